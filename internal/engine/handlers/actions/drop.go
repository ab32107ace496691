package actions

import (
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
)

// HandleDrop обрабатывает команду DROP - выбрасывание предмета из инвентаря
func HandleDrop(ctx handlers.Context, d handlers.Drop) (handlers.Result, error) {
	return handlers.EmptyResult(), systems.Drop(ctx.World, ctx.Actor, d.Item)
}
