package handlers

import (
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/pkg/api"
)

// TypedHandlerFunc - это "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T Intent] func(ctx Context, intent T) (Result, error)

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные (WAIT, PICKUP)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithIntent берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя приведение типа и Validate.
func WithIntent[T Intent](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw Intent) (Result, error) {
		intent, ok := raw.(T)
		if !ok {
			return Result{}, errors.InvalidArgumentf("unexpected intent %T for %s", raw, raw.Action())
		}

		// Проверяем, реализует ли структура T интерфейс Validator
		if v, ok := any(intent).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return Result{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "validation failed")
			}
		}

		return handler(ctx, intent)
	}
}

// WithEmptyIntent - обертка для команд без данных
func WithEmptyIntent(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ Intent) (Result, error) {
		return handler(ctx)
	}
}
