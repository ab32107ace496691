package actions

import (
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
)

// HandleWait обрабатывает команду WAIT (пропуск хода)
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), nil
}
