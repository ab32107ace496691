package actions

import (
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
)

// HandleEquip обрабатывает команду EQUIP - экипировка предмета
func HandleEquip(ctx handlers.Context, e handlers.Equip) (handlers.Result, error) {
	return handlers.EmptyResult(), systems.Equip(ctx.World, ctx.Actor, e.Item)
}
