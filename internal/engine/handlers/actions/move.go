package actions

import (
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
)

// HandleMove - шаг или удар по бойцу на целевой клетке.
func HandleMove(ctx handlers.Context, m handlers.Move) (handlers.Result, error) {
	if _, err := systems.MoveOrAttack(ctx.World, ctx.Actor, m.DX, m.DY); err != nil {
		if errors.IsFailedPrecondition(err) || errors.IsOutOfBounds(err) {
			ctx.World.Warn("Путь прегражден.")
		}
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}
