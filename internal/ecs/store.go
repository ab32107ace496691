// Package ecs — хранилище сущностей и компонентов.
//
// Сущность — это только EntityID. Компоненты лежат в отдельных картах по виду
// (Kind); обратных ссылок из компонента на хранилище нет, связи между
// сущностями выражаются идентификаторами.
package ecs

import (
	"reflect"
	"slices"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// Kind - закрытый перечень видов компонентов. Конкретные значения задаёт домен.
type Kind uint8

// Component - любые данные, прикреплённые к сущности.
// Kind должен работать и на nil-указателе: хранилище вызывает его у нулевого T.
type Component interface {
	Kind() Kind
}

// MaxEntities - предел индекса сущности. Restore не растит таблицу слотов дальше.
const MaxEntities = 1 << 20

type slot struct {
	gen   uint32
	alive bool
}

// Store владеет всеми сущностями уровня.
// Не потокобезопасен: вся мутация идёт в потоке обработки хода.
type Store struct {
	slots      []slot // slots[0] зарезервирован под NilEntityID
	free       []uint32
	order      []types.EntityID
	components map[Kind]map[types.EntityID]Component
	owners     map[uintptr]types.EntityID
}

func NewStore() *Store {
	return &Store{
		slots:      make([]slot, 1),
		components: make(map[Kind]map[types.EntityID]Component),
		owners:     make(map[uintptr]types.EntityID),
	}
}

// CreateEntity выдаёт свободный идентификатор. Освобождённые слоты
// переиспользуются со следующим поколением.
func (s *Store) CreateEntity() types.EntityID {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
		s.slots[idx].gen++
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}
	s.slots[idx].alive = true

	id := types.PackEntityID(s.slots[idx].gen, idx)
	s.order = append(s.order, id)
	return id
}

// Restore воссоздаёт сущность с заранее известным id (загрузка сохранения).
func (s *Store) Restore(id types.EntityID) error {
	if id.IsNil() {
		return errors.InvalidArgument("cannot restore nil entity id")
	}
	idx := id.Index()
	if idx >= MaxEntities {
		return errors.InvalidArgumentf("entity index %d exceeds limit %d", idx, MaxEntities)
	}
	for uint32(len(s.slots)) <= idx {
		s.free = append(s.free, uint32(len(s.slots)))
		s.slots = append(s.slots, slot{})
	}
	if s.slots[idx].alive {
		return errors.FailedPreconditionf("entity slot %d already in use", idx)
	}

	s.free = slices.DeleteFunc(s.free, func(f uint32) bool { return f == idx })
	s.slots[idx] = slot{gen: id.Generation(), alive: true}
	s.order = append(s.order, id)
	return nil
}

// Alive - сущность существует и ссылка не устарела.
func (s *Store) Alive(id types.EntityID) bool {
	idx := id.Index()
	if id.IsNil() || idx >= uint32(len(s.slots)) {
		return false
	}
	sl := s.slots[idx]
	return sl.alive && sl.gen == id.Generation()
}

// DeleteEntity снимает все компоненты и освобождает слот. Повторный вызов ничего не делает.
func (s *Store) DeleteEntity(id types.EntityID) {
	if !s.Alive(id) {
		return
	}
	for _, byID := range s.components {
		if c, ok := byID[id]; ok {
			s.release(c)
			delete(byID, id)
		}
	}
	idx := id.Index()
	s.slots[idx].alive = false
	s.free = append(s.free, idx)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// Add прикрепляет компонент, заменяя компонент того же вида.
// Один и тот же экземпляр не может принадлежать двум сущностям.
func (s *Store) Add(id types.EntityID, c Component) error {
	if c == nil || isNilPointer(c) {
		return errors.InvalidArgument("component is nil")
	}
	if !s.Alive(id) {
		return errors.NotFoundf("entity %s does not exist", id)
	}
	key, tracked := identity(c)
	if tracked {
		if owner, ok := s.owners[key]; ok && owner != id {
			return errors.FailedPreconditionf("component %T already attached to %s", c, owner)
		}
	}

	byID := s.components[c.Kind()]
	if byID == nil {
		byID = make(map[types.EntityID]Component)
		s.components[c.Kind()] = byID
	}
	if prev, ok := byID[id]; ok {
		s.release(prev)
	}
	byID[id] = c
	if tracked {
		s.owners[key] = id
	}
	return nil
}

// Components возвращает все компоненты сущности, упорядоченные по виду.
func (s *Store) Components(id types.EntityID) []Component {
	if !s.Alive(id) {
		return nil
	}
	var out []Component
	for _, byID := range s.components {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b Component) int { return int(a.Kind()) - int(b.Kind()) })
	return out
}

// Len - число живых сущностей.
func (s *Store) Len() int {
	return len(s.order)
}

// Entities перечисляет живые сущности в порядке создания.
func (s *Store) Entities() []types.EntityID {
	return slices.Clone(s.order)
}

// Clear удаляет всё (смена уровня).
func (s *Store) Clear() {
	for _, id := range s.Entities() {
		s.DeleteEntity(id)
	}
}

func (s *Store) release(c Component) {
	if key, ok := identity(c); ok {
		delete(s.owners, key)
	}
}

func (s *Store) lookup(kind Kind, id types.EntityID) (Component, bool) {
	if !s.Alive(id) {
		return nil, false
	}
	c, ok := s.components[kind][id]
	return c, ok
}

func (s *Store) drop(kind Kind, id types.EntityID) bool {
	c, ok := s.lookup(kind, id)
	if !ok {
		return false
	}
	s.release(c)
	delete(s.components[kind], id)
	return true
}

// identity - адрес экземпляра, если компонент хранится по указателю.
func identity(c Component) (uintptr, bool) {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Pointer {
		return 0, false
	}
	return v.Pointer(), true
}

func isNilPointer(c Component) bool {
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
