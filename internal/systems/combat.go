package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
)

// Bonuses - суммарные прибавки от надетой экипировки.
type Bonuses struct {
	Power   int
	Defense int
	MaxHP   int
}

// EquipmentBonuses суммирует всё, что надето на сущность.
func EquipmentBonuses(store *ecs.Store, id types.EntityID) Bonuses {
	var b Bonuses
	slots, ok := ecs.Get[*domain.EquipmentSlots](store, id)
	if !ok {
		return b
	}
	for _, itemID := range slots.Equipped() {
		eq, ok := ecs.Get[*domain.Equipment](store, itemID)
		if !ok {
			continue
		}
		b.Power += eq.PowerBonus
		b.Defense += eq.DefenseBonus
		b.MaxHP += eq.MaxHPBonus
	}
	return b
}

// CalculateDamage = сила + бонусы атакующего − защита − бонусы защитника, не меньше нуля.
// Без Fighter у любой из сторон урон нулевой.
func CalculateDamage(store *ecs.Store, attacker, defender types.EntityID) int {
	af, ok := ecs.Get[*domain.Fighter](store, attacker)
	if !ok {
		return 0
	}
	df, ok := ecs.Get[*domain.Fighter](store, defender)
	if !ok {
		return 0
	}
	dmg := af.Power + EquipmentBonuses(store, attacker).Power -
		df.Defense - EquipmentBonuses(store, defender).Defense
	return max(dmg, 0)
}

// AttackResult - итог одного удара.
type AttackResult struct {
	Damage int
	Killed bool
	Corpse types.EntityID
}

// Attack наносит удар attacker -> defender. Обе стороны должны быть бойцами.
func Attack(w *World, attacker, defender types.EntityID) (AttackResult, error) {
	if _, err := ecs.Require[*domain.Fighter](w.Store, attacker); err != nil {
		return AttackResult{}, err
	}
	df, err := ecs.Require[*domain.Fighter](w.Store, defender)
	if err != nil {
		return AttackResult{}, err
	}

	combatLogger := w.logger("combat_system").WithFields(logrus.Fields{
		"attacker": attacker,
		"defender": defender,
	})

	attackerName, defenderName := w.NameOf(attacker), w.NameOf(defender)
	if df.IsDead() {
		combatLogger.Debug("Attack ineffective: defender already dead")
		return AttackResult{}, nil
	}

	dmg := CalculateDamage(w.Store, attacker, defender)
	hpBefore := df.HP
	killed := df.TakeDamage(dmg)

	combatLogger.WithFields(logrus.Fields{
		"damage":    dmg,
		"hp_before": hpBefore,
		"hp_after":  df.HP,
		"killed":    killed,
	}).Debug("Attack resolved")

	if dmg > 0 {
		w.Say(domain.MessageCombat, fmt.Sprintf("%s наносит %d урона: %s.", attackerName, dmg, defenderName))
	} else {
		w.Say(domain.MessageCombat, fmt.Sprintf("%s атакует %s, но не пробивает защиту.", attackerName, defenderName))
	}

	res := AttackResult{Damage: dmg, Killed: killed}
	if killed {
		corpse, err := HandleDeath(w, defender, attacker)
		if err != nil {
			return res, err
		}
		res.Corpse = corpse
	}
	return res, nil
}

// HandleDeath превращает погибшего в останки и начисляет опыт убийце.
// Смерть игрока только завершает игру: его сущность остаётся для отрисовки.
func HandleDeath(w *World, victim, killer types.EntityID) (types.EntityID, error) {
	name := w.NameOf(victim)
	if victim == w.Player {
		w.GameOver = true
		if r, ok := ecs.Get[*domain.Renderable](w.Store, victim); ok {
			r.Glyph = domain.GlyphCorpse
			r.Order = enums.RenderCorpse
		}
		w.Say(domain.MessageDeath, "Вы погибли.")
		w.Emit(domain.Event{Type: domain.EventPlayerDied, Entity: victim})
		w.logger("combat_system").WithField("killer", killer).Info("Player died")
		return types.NilEntityID, nil
	}

	pos, err := ecs.Require[*domain.Position](w.Store, victim)
	if err != nil {
		return types.NilEntityID, err
	}
	at := pos.Point()
	xp := 0
	if f, ok := ecs.Get[*domain.Fighter](w.Store, victim); ok {
		xp = f.XP
	}

	// На клетке остаются только одни останки.
	for _, other := range w.EntitiesAt(at) {
		if other == victim {
			continue
		}
		if ecs.Has[*domain.Corpse](w.Store, other) {
			w.Store.DeleteEntity(other)
			continue
		}
		if f, ok := ecs.Get[*domain.Fighter](w.Store, other); ok && f.IsDead() && other != w.Player {
			w.Store.DeleteEntity(other)
		}
	}
	w.Store.DeleteEntity(victim)

	corpse := w.Store.CreateEntity()
	remains := domain.CorpseNamePrefix + name
	for _, c := range []ecs.Component{
		&domain.Position{X: at.X, Y: at.Y},
		&domain.Renderable{Glyph: domain.GlyphCorpse, Order: enums.RenderCorpse},
		&domain.Name{Value: remains},
		&domain.Corpse{OriginalName: name},
		&domain.Item{Identified: true},
	} {
		if err := w.Store.Add(corpse, c); err != nil {
			w.Store.DeleteEntity(corpse)
			return types.NilEntityID, err
		}
	}

	w.Say(domain.MessageDeath, fmt.Sprintf("%s погибает.", name))
	w.Emit(domain.Event{Type: domain.EventEntityDied, Entity: victim})

	grantXP(w, killer, xp)
	return corpse, nil
}

func grantXP(w *World, killer types.EntityID, xp int) {
	lvl, ok := ecs.Get[*domain.Level](w.Store, killer)
	if !ok || xp <= 0 {
		return
	}
	gained := lvl.AddXP(xp)
	w.Say(domain.MessageInfo, fmt.Sprintf("Получено %d опыта.", xp))
	if gained == 0 {
		return
	}

	if f, ok := ecs.Get[*domain.Fighter](w.Store, killer); ok {
		f.MaxHP += gained * domain.LevelUpMaxHP
		f.Defense += gained * domain.LevelUpDefense
		f.Power += gained * domain.LevelUpPower
		f.HP = f.MaxHP
	}
	w.Say(domain.MessageLevelUp, fmt.Sprintf("Достигнут уровень %d!", lvl.Current))
	w.Emit(domain.Event{Type: domain.EventLevelUp, Entity: killer, Value: lvl.Current})
	w.logger("combat_system").WithFields(logrus.Fields{
		"entity": killer,
		"level":  lvl.Current,
	}).Info("Level up")
}
