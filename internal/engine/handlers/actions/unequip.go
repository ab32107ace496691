package actions

import (
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
)

// HandleUnequip обрабатывает команду UNEQUIP - снятие экипировки
func HandleUnequip(ctx handlers.Context, u handlers.Unequip) (handlers.Result, error) {
	return handlers.EmptyResult(), systems.Unequip(ctx.World, ctx.Actor, u.Slot)
}
