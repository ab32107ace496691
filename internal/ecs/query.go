package ecs

import (
	"iter"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
)

// Row2 и Row3 — кортежи компонентов для многотипных запросов.
type Row2[A, B Component] struct {
	A A
	B B
}

type Row3[A, B, C Component] struct {
	A A
	B B
	C C
}

// Query1 обходит сущности с компонентом A в порядке создания.
// Последовательность ленивая и перезапускаемая; сущности, удалённые во время
// обхода, пропускаются.
func Query1[A Component](s *Store) iter.Seq2[types.EntityID, A] {
	return func(yield func(types.EntityID, A) bool) {
		for _, id := range s.Entities() {
			a, ok := Get[A](s, id)
			if !ok {
				continue
			}
			if !yield(id, a) {
				return
			}
		}
	}
}

func Query2[A, B Component](s *Store) iter.Seq2[types.EntityID, Row2[A, B]] {
	return func(yield func(types.EntityID, Row2[A, B]) bool) {
		for _, id := range s.Entities() {
			a, ok := Get[A](s, id)
			if !ok {
				continue
			}
			b, ok := Get[B](s, id)
			if !ok {
				continue
			}
			if !yield(id, Row2[A, B]{A: a, B: b}) {
				return
			}
		}
	}
}

func Query3[A, B, C Component](s *Store) iter.Seq2[types.EntityID, Row3[A, B, C]] {
	return func(yield func(types.EntityID, Row3[A, B, C]) bool) {
		for _, id := range s.Entities() {
			a, ok := Get[A](s, id)
			if !ok {
				continue
			}
			b, ok := Get[B](s, id)
			if !ok {
				continue
			}
			c, ok := Get[C](s, id)
			if !ok {
				continue
			}
			if !yield(id, Row3[A, B, C]{A: a, B: b, C: c}) {
				return
			}
		}
	}
}
