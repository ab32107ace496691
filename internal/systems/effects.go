package systems

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// Target - на что направлено применение предмета.
// Tile нужен эффектам по площади и позволяет выбрать цель для смятения
// и паралича; Item — предмет для опознания.
type Target struct {
	Tile *domain.Point
	Item types.EntityID
}

// Outcome - итог применения эффекта.
type Outcome struct {
	Consumed bool
	Affected []types.EntityID
}

// UseItem применяет предмет из рюкзака. Экипировка надевается или снимается,
// расходуемые предметы после успешного применения удаляются.
func UseItem(ctx context.Context, w *World, user, item types.EntityID, target Target) (Outcome, error) {
	inv, err := ecs.Require[*domain.Inventory](w.Store, user)
	if err != nil {
		return Outcome{}, err
	}
	if !inv.Contains(item) {
		return Outcome{}, errors.NotFoundf("item %s is not in the inventory", item)
	}

	if ecs.Has[*domain.Equipment](w.Store, item) {
		if slots, ok := ecs.Get[*domain.EquipmentSlots](w.Store, user); ok {
			if slot, worn := slots.SlotOf(item); worn {
				return Outcome{}, Unequip(w, user, slot)
			}
		}
		return Outcome{}, Equip(w, user, item)
	}

	it, err := ecs.Require[*domain.Item](w.Store, item)
	if err != nil {
		return Outcome{}, err
	}
	if target.Item == item {
		return Outcome{}, errors.InvalidArgument("item cannot target itself")
	}

	out, err := ApplyEffect(ctx, w, it.Effect, user, target)
	if err != nil {
		return out, err
	}
	if out.Consumed {
		inv.Remove(item)
		w.Store.DeleteEntity(item)
		w.Emit(domain.Event{Type: domain.EventItemConsumed, Entity: item})
	}

	w.logger("effects_system").WithFields(logrus.Fields{
		"user":     user,
		"item":     item,
		"effect":   it.Effect.Kind.String(),
		"affected": len(out.Affected),
	}).Debug("Item used")
	return out, nil
}

// ApplyEffect - единая точка применения эффектов. Проверки целей выполняются
// до любых изменений; ошибка означает, что ход не потрачен.
func ApplyEffect(ctx context.Context, w *World, effect domain.ItemEffect, user types.EntityID, target Target) (Outcome, error) {
	switch effect.Kind {
	case domain.EffectHeal:
		return applyHeal(w, effect, user)
	case domain.EffectDamageNearest:
		return applyDamageNearest(w, effect, user)
	case domain.EffectDamageArea:
		return applyDamageArea(w, effect, user, target)
	case domain.EffectConfuse:
		return applyStatus(ctx, w, effect, user, target, EventConfuse, "%s в смятении!")
	case domain.EffectParalyze:
		return applyStatus(ctx, w, effect, user, target, EventParalyze, "%s парализован!")
	case domain.EffectTeleport:
		if _, err := Teleport(w, user); err != nil {
			return Outcome{}, err
		}
		w.Say(domain.MessageInfo, "Пространство вокруг вас смещается.")
		return Outcome{Consumed: true, Affected: []types.EntityID{user}}, nil
	case domain.EffectIdentify:
		return applyIdentify(w, user, target)
	default:
		return Outcome{}, errors.FailedPreconditionf("effect %s cannot be used", effect.Kind)
	}
}

func applyHeal(w *World, effect domain.ItemEffect, user types.EntityID) (Outcome, error) {
	f, err := ecs.Require[*domain.Fighter](w.Store, user)
	if err != nil {
		return Outcome{}, err
	}
	if f.HP >= f.MaxHP {
		w.Warn("Здоровье и так полное.")
		return Outcome{}, errors.FailedPrecondition("already at full health")
	}
	healed := f.Heal(effect.Amount, f.MaxHP)
	w.Say(domain.MessageInfo, fmt.Sprintf("Раны затягиваются (+%d HP).", healed))
	return Outcome{Consumed: true, Affected: []types.EntityID{user}}, nil
}

func applyDamageNearest(w *World, effect domain.ItemEffect, user types.EntityID) (Outcome, error) {
	pos, err := ecs.Require[*domain.Position](w.Store, user)
	if err != nil {
		return Outcome{}, err
	}
	victim, ok := NearestVisibleMonster(w, pos.Point(), effect.Range)
	if !ok {
		w.Warn("Рядом нет врагов.")
		return Outcome{}, errors.FailedPrecondition("no visible enemy in range")
	}
	w.Say(domain.MessageCombat, fmt.Sprintf("Молния бьёт: %s (%d урона).", w.NameOf(victim), effect.Amount))
	if err := damage(w, user, victim, effect.Amount); err != nil {
		return Outcome{}, err
	}
	return Outcome{Consumed: true, Affected: []types.EntityID{victim}}, nil
}

func applyDamageArea(w *World, effect domain.ItemEffect, user types.EntityID, target Target) (Outcome, error) {
	if target.Tile == nil {
		return Outcome{}, errors.InvalidArgument("area effect needs a target tile")
	}
	if err := ValidateTargetTile(w, user, *target.Tile, 0); err != nil {
		return Outcome{}, err
	}

	victims := FightersInRadius(w, *target.Tile, effect.Range)
	if len(victims) == 0 {
		w.Say(domain.MessageCombat, "Огненный шар взрывается, но никого не задевает.")
	} else {
		w.Say(domain.MessageCombat, fmt.Sprintf("Огненный шар взрывается, задевая целей: %d.", len(victims)))
	}
	for _, victim := range victims {
		if err := damage(w, user, victim, effect.Amount); err != nil {
			return Outcome{}, err
		}
	}
	return Outcome{Consumed: true, Affected: victims}, nil
}

func applyStatus(ctx context.Context, w *World, effect domain.ItemEffect, user types.EntityID, target Target, event, message string) (Outcome, error) {
	victim, err := pickStatusTarget(w, user, target, effect.Range)
	if err != nil {
		return Outcome{}, err
	}
	ai, err := ecs.Require[*domain.AI](w.Store, victim)
	if err != nil {
		return Outcome{}, err
	}
	if err := TransitionAI(ctx, ai, event, effect.Turns); err != nil {
		return Outcome{}, err
	}
	w.Say(domain.MessageInfo, fmt.Sprintf(message, w.NameOf(victim)))
	return Outcome{Consumed: true, Affected: []types.EntityID{victim}}, nil
}

// pickStatusTarget - монстр на выбранной клетке или ближайший видимый.
func pickStatusTarget(w *World, user types.EntityID, target Target, maxRange int) (types.EntityID, error) {
	if target.Tile == nil {
		pos, err := ecs.Require[*domain.Position](w.Store, user)
		if err != nil {
			return types.NilEntityID, err
		}
		victim, ok := NearestVisibleMonster(w, pos.Point(), maxRange)
		if !ok {
			return types.NilEntityID, errors.FailedPrecondition("no visible enemy in range")
		}
		return victim, nil
	}

	if err := ValidateTargetTile(w, user, *target.Tile, maxRange); err != nil {
		return types.NilEntityID, err
	}
	victim, ok := w.BlockerAt(*target.Tile)
	if !ok || !ecs.Has[*domain.AI](w.Store, victim) {
		return types.NilEntityID, errors.FailedPreconditionf("no enemy at (%d,%d)", target.Tile.X, target.Tile.Y)
	}
	return victim, nil
}

func applyIdentify(w *World, user types.EntityID, target Target) (Outcome, error) {
	inv, err := ecs.Require[*domain.Inventory](w.Store, user)
	if err != nil {
		return Outcome{}, err
	}

	var candidate types.EntityID
	if !target.Item.IsNil() {
		if !inv.Contains(target.Item) {
			return Outcome{}, errors.NotFoundf("item %s is not in the inventory", target.Item)
		}
		if it, ok := ecs.Get[*domain.Item](w.Store, target.Item); ok && !it.Identified {
			candidate = target.Item
		}
	} else {
		for _, id := range inv.Items {
			if it, ok := ecs.Get[*domain.Item](w.Store, id); ok && !it.Identified && it.Effect.Kind != domain.EffectIdentify {
				candidate = id
				break
			}
		}
	}
	if candidate.IsNil() {
		return Outcome{}, errors.FailedPrecondition("nothing to identify")
	}

	it, _ := ecs.Get[*domain.Item](w.Store, candidate)
	it.Identified = true
	w.Say(domain.MessageInfo, fmt.Sprintf("Опознано: %s.", w.NameOf(candidate)))
	return Outcome{Consumed: true, Affected: []types.EntityID{candidate}}, nil
}

// damage - урон эффектом (мимо защиты). Смерть обрабатывается как в бою.
func damage(w *World, source, victim types.EntityID, amount int) error {
	f, ok := ecs.Get[*domain.Fighter](w.Store, victim)
	if !ok || f.IsDead() {
		return nil
	}
	if f.TakeDamage(amount) {
		if _, err := HandleDeath(w, victim, source); err != nil {
			return err
		}
	}
	return nil
}
