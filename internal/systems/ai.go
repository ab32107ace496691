package systems

import (
	"context"
	stderrors "errors"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// События автомата ИИ.
const (
	EventConfuse  = "confuse"
	EventParalyze = "paralyze"
	EventFlee     = "flee"
	EventRecover  = "recover"
)

var allAIStates = []string{
	enums.AIStateHostile.String(),
	enums.AIStateConfused.String(),
	enums.AIStateParalyzed.String(),
	enums.AIStateFleeing.String(),
}

var aiEvents = fsm.Events{
	{Name: EventConfuse, Src: allAIStates, Dst: enums.AIStateConfused.String()},
	{Name: EventParalyze, Src: allAIStates, Dst: enums.AIStateParalyzed.String()},
	{Name: EventFlee, Src: []string{enums.AIStateHostile.String(), enums.AIStateFleeing.String()}, Dst: enums.AIStateFleeing.String()},
	{Name: EventRecover, Src: allAIStates, Dst: enums.AIStateHostile.String()},
}

// TransitionAI переводит автомат сущности по событию и выставляет срок
// действия нового состояния (0 — бессрочно).
// Паралич нельзя сменить бегством: такой переход возвращает FAILED_PRECONDITION.
func TransitionAI(ctx context.Context, ai *domain.AI, event string, turns int) error {
	current := ai.State
	if current == enums.AIStateUnknown {
		current = enums.AIStateHostile
	}
	machine := fsm.NewFSM(current.String(), aiEvents, fsm.Callbacks{})

	err := machine.Event(ctx, event)
	var noTransition fsm.NoTransitionError
	if err != nil && !stderrors.As(err, &noTransition) {
		return errors.WrapWithCodef(err, errors.CodeFailedPrecondition, "ai transition %q from %s", event, current).
			WithMeta("event", event)
	}

	ai.State = enums.ParseAIState(machine.Current())
	ai.TurnsRemaining = max(turns, 0)
	if ai.State == enums.AIStateHostile {
		ai.TurnsRemaining = 0
	}
	return nil
}

// tickAIState отсчитывает срок состояния; по истечении — обратно в Hostile.
func tickAIState(ctx context.Context, ai *domain.AI) (bool, error) {
	if ai.TurnsRemaining <= 0 {
		return false, nil
	}
	ai.TurnsRemaining--
	if ai.TurnsRemaining > 0 {
		return false, nil
	}
	if err := TransitionAI(ctx, ai, EventRecover, 0); err != nil {
		return false, err
	}
	return true, nil
}

// RunAI - проход ИИ: каждая сущность с AI и Position действует один раз,
// в порядке создания.
func RunAI(ctx context.Context, w *World) error {
	playerPos, ok := ecs.Get[*domain.Position](w.Store, w.Player)
	if !ok {
		return nil
	}

	// Поле стоимости одно на ход: строится лениво, при первом враждебном.
	var field *CostField

	for id, row := range ecs.Query2[*domain.AI, *domain.Position](w.Store) {
		if w.GameOver {
			return nil
		}
		if f, ok := ecs.Get[*domain.Fighter](w.Store, id); ok && f.IsDead() {
			continue
		}
		if field == nil && (row.A.State == enums.AIStateHostile || row.A.State == enums.AIStateFleeing) {
			var err error
			occupied := occupiedTiles(w)
			field, err = BuildCostField(w.Grid, playerPos.Point(), func(p domain.Point) bool {
				return occupied[p]
			})
			if err != nil {
				return err
			}
		}
		if err := takeTurn(ctx, w, id, row.A, row.B, playerPos.Point(), field); err != nil {
			return err
		}
	}
	return nil
}

func takeTurn(ctx context.Context, w *World, id types.EntityID, ai *domain.AI, pos *domain.Position, target domain.Point, field *CostField) error {
	aiLogger := w.logger("ai_system").WithFields(logrus.Fields{
		"entity": id,
		"state":  ai.State.String(),
	})

	switch {
	case ai.State == enums.AIStateParalyzed:
		// стоит на месте

	case pos.Point().IsAdjacent(target):
		if _, err := Attack(w, id, w.Player); err != nil {
			return err
		}

	case ai.State == enums.AIStateConfused:
		randomStep(w, pos)

	case field == nil:
		randomStep(w, pos)

	case ai.State == enums.AIStateFleeing:
		next, err := field.Away(pos.Point(), w.CanEnter)
		if err != nil {
			aiLogger.WithError(err).Debug("Flee step failed, random walk")
			randomStep(w, pos)
			break
		}
		pos.MoveTo(next)

	default:
		next, err := field.Toward(pos.Point(), w.CanEnter)
		if err != nil {
			aiLogger.WithError(err).Debug("Pathfinding failed, random walk")
			randomStep(w, pos)
			break
		}
		pos.MoveTo(next)
	}

	recovered, err := tickAIState(ctx, ai)
	if err != nil {
		return err
	}
	if recovered {
		aiLogger.Debug("State expired, back to hostile")
	}
	return nil
}

// occupiedTiles - клетки под живыми бойцами на начало прохода.
func occupiedTiles(w *World) map[domain.Point]bool {
	out := make(map[domain.Point]bool)
	for _, row := range ecs.Query2[*domain.Position, *domain.Fighter](w.Store) {
		if !row.B.IsDead() {
			out[row.A.Point()] = true
		}
	}
	return out
}

// randomStep делает шаг в случайную свободную соседнюю клетку.
// Направления перебираются в случайном порядке, поэтому если хоть одна
// соседняя клетка свободна, шаг будет сделан.
func randomStep(w *World, pos *domain.Position) bool {
	for _, i := range w.Rng.Perm(len(domain.Directions8)) {
		next := pos.Point().Add(domain.Directions8[i])
		if w.CanEnter(next) {
			pos.MoveTo(next)
			return true
		}
	}
	return false
}
