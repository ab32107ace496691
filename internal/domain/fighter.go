package domain

import "github.com/yuru-sha/roguelike-sub000/internal/ecs"

// Fighter - боевые характеристики. XP — опыт, который получит убийца.
// Инвариант: 0 <= HP <= MaxHP.
type Fighter struct {
	HP      int
	MaxHP   int
	Defense int
	Power   int
	XP      int
}

func (*Fighter) Kind() ecs.Kind { return KindFighter }

// TakeDamage уменьшает HP, не опуская ниже нуля. Возвращает true, если боец погиб этим ударом.
func (f *Fighter) TakeDamage(amount int) bool {
	if f.HP <= 0 {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	f.HP = max(f.HP-amount, 0)
	return f.HP == 0
}

// Heal лечит не выше limit (обычно MaxHP с учётом экипировки). Возвращает вылеченное.
func (f *Fighter) Heal(amount, limit int) int {
	if f.HP <= 0 || amount <= 0 {
		return 0
	}
	before := f.HP
	f.HP = min(f.HP+amount, limit)
	return max(f.HP-before, 0)
}

func (f *Fighter) IsDead() bool {
	return f.HP <= 0
}
