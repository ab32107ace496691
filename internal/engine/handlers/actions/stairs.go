package actions

import (
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// HandleStairs проверяет, что игрок стоит на нужной лестнице.
// Сам переход выполняет движок по событию LEVEL_TRANSITION:
// Value = +1 вниз, -1 вверх.
func HandleStairs(ctx handlers.Context, s handlers.UseStairs) (handlers.Result, error) {
	pos, ok := ecs.Get[*domain.Position](ctx.World.Store, ctx.Actor)
	if !ok {
		return handlers.EmptyResult(), errors.ComponentMissingf("actor %s has no position", ctx.Actor)
	}
	kind, _ := ctx.World.Grid.KindAt(pos.X, pos.Y)

	ev := &domain.Event{Type: domain.EventLevelTransition, Entity: ctx.Actor}
	switch s.Direction {
	case domain.StairsDown:
		if kind != enums.TileStairsDown {
			ctx.World.Warn("Здесь нет лестницы вниз.")
			return handlers.EmptyResult(), errors.FailedPrecondition("no stairs down here")
		}
		ev.Value = 1
	case domain.StairsUp:
		if kind != enums.TileStairsUp {
			ctx.World.Warn("Здесь нет лестницы вверх.")
			return handlers.EmptyResult(), errors.FailedPrecondition("no stairs up here")
		}
		ev.Value = -1
	}
	return handlers.Result{Event: ev}, nil
}
