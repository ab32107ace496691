package domain

import "github.com/yuru-sha/roguelike-sub000/internal/ecs"

// Level - прогресс персонажа.
type Level struct {
	Current  int
	XP       int
	XPToNext int
}

func (*Level) Kind() ecs.Kind { return KindLevel }

// NewLevel - первый уровень с порогом base.
func NewLevel(base int) *Level {
	return &Level{Current: 1, XPToNext: base}
}

// AddXP начисляет опыт. Излишек переносится, порог растёт в LevelUpFactor раз.
// Возвращает число полученных уровней.
func (l *Level) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	l.XP += amount
	gained := 0
	for l.XPToNext > 0 && l.XP >= l.XPToNext {
		l.XP -= l.XPToNext
		l.Current++
		l.XPToNext = int(float64(l.XPToNext) * LevelUpFactor)
		gained++
	}
	return gained
}
