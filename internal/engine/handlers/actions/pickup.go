package actions

import (
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
)

// HandlePickup обрабатывает команду PICKUP - подбор первого предмета под ногами
func HandlePickup(ctx handlers.Context) (handlers.Result, error) {
	if _, err := systems.Pickup(ctx.World, ctx.Actor); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}
