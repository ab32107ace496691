package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
)

// processEvent - является точкой входа для обработки событий, возвращенных хендлерами.
func (g *Game) processEvent(ev domain.Event) error {
	switch ev.Type {
	case domain.EventLevelTransition:
		return g.handleLevelTransition(ev.Value)
	default:
		g.log.WithField("event", ev.Type.String()).Warn("Unknown event type")
		return nil
	}
}

// handleLevelTransition переводит игрока на соседний уровень: delta +1 вниз, -1 вверх.
// Новый уровень генерируется заново; из старого остаются только игрок и то,
// что он несёт. Генерация и расстановка планируются до любых изменений:
// при ошибке старый уровень не тронут.
func (g *Game) handleLevelTransition(delta int) error {
	w := g.world
	oldDepth := g.depth
	newDepth := oldDepth + delta
	if newDepth < 1 {
		w.Warn("Выход наверх закрыт.")
		return errors.FailedPreconditionf("cannot ascend above depth 1")
	}

	pos, err := ecs.Require[*domain.Position](w.Store, w.Player)
	if err != nil {
		return err
	}

	// 1. Уровень и план расстановки, мир пока не меняется
	level, err := dungeon.Generate(g.cfg.DungeonConfig(), newDepth, w.Rng)
	if err != nil {
		return err
	}
	// вниз - в начало уровня, вверх - к лестнице вниз
	target := level.Start
	if delta < 0 {
		target = level.StairsDown
	}
	plan, err := g.populator.Plan(level, map[domain.Point]bool{target: true}, w.Rng)
	if err != nil {
		return errors.Wrap(err, "populate level")
	}

	// 2. Чистим хранилище, оставляя игрока и его вещи
	keep := g.carried()
	for _, id := range w.Store.Entities() {
		if !keep[id] {
			w.Store.DeleteEntity(id)
		}
	}

	// 3. Ставим игрока и заселяем уровень
	pos.MoveTo(target)
	w.Grid = level.Grid
	g.depth = newDepth
	g.rooms = level.Rooms
	g.vision.Invalidate()

	pop, err := dungeon.Place(w.Store, plan)
	if err != nil {
		// Шаблоны проверены планом.
		return errors.WrapWithCode(err, errors.CodeInternal, "place level entities")
	}

	// 4. Логирование
	if newDepth > oldDepth {
		w.Say(domain.MessageInfo, fmt.Sprintf("Вы спускаетесь на уровень %d.", newDepth))
	} else {
		w.Say(domain.MessageInfo, fmt.Sprintf("Вы поднимаетесь на уровень %d.", newDepth))
	}
	w.Emit(domain.Event{Type: domain.EventLevelTransition, Entity: w.Player, Value: newDepth})

	g.log.WithFields(logrus.Fields{
		"component": "level_transition",
		"from":      oldDepth,
		"to":        newDepth,
		"monsters":  pop.Monsters,
		"items":     pop.Items,
	}).Info("Level changed")
	return nil
}

// carried - игрок, его инвентарь и надетые вещи.
func (g *Game) carried() map[types.EntityID]bool {
	w := g.world
	keep := map[types.EntityID]bool{w.Player: true}
	if inv, ok := ecs.Get[*domain.Inventory](w.Store, w.Player); ok {
		for _, id := range inv.Items {
			keep[id] = true
		}
	}
	if slots, ok := ecs.Get[*domain.EquipmentSlots](w.Store, w.Player); ok {
		for _, id := range slots.Slots {
			keep[id] = true
		}
	}
	return keep
}
