package handlers

import (
	"context"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
)

// Intent - намерение игрока на один ход.
type Intent interface {
	Action() domain.ActionType
}

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Ctx   context.Context
	World *systems.World
	Actor types.EntityID // Тот, кто выполняет команду
}

// Result - возвращает результат выполнения команды.
// Сообщения хендлер пишет в журнал мира, движку он возвращает только события,
// которые тот должен обработать сам (смена уровня).
type Result struct {
	Event *domain.Event
	// Free - действие вне игрового времени: монстры не ходят, счётчик ходов
	// не растёт, автосохранения нет.
	Free bool
}

// HandlerFunc - это контракт для любой команды (MOVE, PICKUP, etc).
// Ошибка означает, что ход отклонён, и мир не изменился.
type HandlerFunc func(ctx Context, intent Intent) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
