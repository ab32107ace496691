package ecs

import (
	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

func kindOf[T Component]() Kind {
	var zero T
	return zero.Kind()
}

// Get возвращает компонент вида T. Для указательных T результат изменяемый.
func Get[T Component](s *Store, id types.EntityID) (T, bool) {
	c, ok := s.lookup(kindOf[T](), id)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := c.(T)
	return typed, ok
}

// Require - как Get, но отсутствие оформлено ошибкой COMPONENT_MISSING.
func Require[T Component](s *Store, id types.EntityID) (T, error) {
	c, ok := Get[T](s, id)
	if !ok {
		return c, errors.ComponentMissingf("entity %s has no %T", id, c)
	}
	return c, nil
}

func Has[T Component](s *Store, id types.EntityID) bool {
	_, ok := s.lookup(kindOf[T](), id)
	return ok
}

// Remove снимает компонент; false, если его не было.
func Remove[T Component](s *Store, id types.EntityID) bool {
	return s.drop(kindOf[T](), id)
}
