// Package systems — правила одного хода: видимость, преследование, бой,
// предметы. Системы не держат состояния между ходами; всё, что им нужно,
// приходит через World.
package systems

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
)

// World - контекст хода. Глобальных синглтонов нет: хранилище, сетка,
// генератор случайных чисел и логгер передаются явно.
type World struct {
	Store    *ecs.Store
	Grid     *domain.Grid
	Player   types.EntityID
	Turn     int
	Rng      *rand.Rand
	Log      logrus.FieldLogger
	Messages *domain.MessageLog

	// Visible - поле зрения игрока на текущий ход (может быть nil до первого расчёта).
	Visible *mapset.Set[domain.Point]

	GameOver bool
	events   []domain.Event
	warnings []domain.Message
}

// NewWorld собирает контекст. Пустые зависимости заменяются рабочими значениями.
func NewWorld(store *ecs.Store, grid *domain.Grid, rng *rand.Rand, log logrus.FieldLogger) *World {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &World{
		Store:    store,
		Grid:     grid,
		Rng:      rng,
		Log:      log,
		Messages: domain.NewMessageLog(domain.MessageLogLimit),
	}
}

// Say добавляет сообщение текущего хода.
func (w *World) Say(kind domain.MessageKind, text string) {
	w.Messages.Add(domain.Message{Turn: w.Turn, Text: text, Kind: kind})
}

// Warn - предупреждение для игрока об отказе. В журнал не попадает:
// отклонённое намерение мир не меняет, текст уходит только в ответ на ход.
func (w *World) Warn(text string) {
	w.warnings = append(w.warnings, domain.Message{Turn: w.Turn, Text: text, Kind: domain.MessageWarning})
}

// DrainWarnings отдаёт предупреждения последнего намерения и очищает их.
func (w *World) DrainWarnings() []domain.Message {
	out := w.warnings
	w.warnings = nil
	return out
}

func (w *World) Emit(e domain.Event) {
	w.events = append(w.events, e)
}

// DrainEvents отдаёт накопленные события и очищает очередь.
func (w *World) DrainEvents() []domain.Event {
	out := w.events
	w.events = nil
	return out
}

// IsVisible - клетка в поле зрения игрока.
func (w *World) IsVisible(p domain.Point) bool {
	return w.Visible != nil && w.Visible.Has(p)
}

// NameOf - отображаемое имя или id, если имени нет.
func (w *World) NameOf(id types.EntityID) string {
	if n, ok := ecs.Get[*domain.Name](w.Store, id); ok {
		return n.Value
	}
	return id.String()
}

// BlockerAt - живой боец на клетке (игрок или монстр).
func (w *World) BlockerAt(p domain.Point) (types.EntityID, bool) {
	for id, row := range ecs.Query2[*domain.Position, *domain.Fighter](w.Store) {
		if row.A.Point() == p && !row.B.IsDead() {
			return id, true
		}
	}
	return types.NilEntityID, false
}

// EntitiesAt перечисляет сущности на клетке в порядке создания.
func (w *World) EntitiesAt(p domain.Point) []types.EntityID {
	var out []types.EntityID
	for id, pos := range ecs.Query1[*domain.Position](w.Store) {
		if pos.Point() == p {
			out = append(out, id)
		}
	}
	return out
}

// CanEnter - клетка проходима и не занята бойцом.
func (w *World) CanEnter(p domain.Point) bool {
	if !w.Grid.IsWalkable(p.X, p.Y) {
		return false
	}
	_, blocked := w.BlockerAt(p)
	return !blocked
}

func (w *World) logger(component string) logrus.FieldLogger {
	return w.Log.WithFields(logrus.Fields{"component": component, "turn": w.Turn})
}
