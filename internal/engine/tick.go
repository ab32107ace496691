package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
)

// TickResult - итог одного хода.
type TickResult struct {
	Turn  int
	Depth int

	// Acted - намерение принято. Ход потрачен, если действие не Free.
	Acted bool
	Free  bool
	// FOVRecomputed - игрок сдвинулся, поле зрения посчитано заново.
	FOVRecomputed bool
	GameOver      bool

	Events   []domain.Event
	Messages []domain.Message
	// Warnings - почему намерение отклонено. В журнал мира не пишутся.
	Warnings []domain.Message

	// Saved - после хода записано автосохранение.
	Saved bool
	// SaveErr - автосохранение не удалось; на состояние партии не влияет.
	SaveErr error
}

// Tick выполняет ровно одно действие игрока и затем полный проход ИИ в
// порядке создания сущностей. Отклонённое намерение возвращает ошибку, не
// меняет мир и не тратит ход.
func (g *Game) Tick(ctx context.Context, intent handlers.Intent) (TickResult, error) {
	w := g.world
	mark := w.Messages.Total()

	if intent == nil {
		return g.result(mark), errors.InvalidArgument("intent is required")
	}
	log := g.log.WithFields(logrus.Fields{
		"component": "tick",
		"turn":      w.Turn,
		"action":    intent.Action().String(),
	})

	if w.GameOver {
		return g.result(mark), errors.FailedPrecondition("game is over")
	}
	handler, ok := g.handlers[intent.Action()]
	if !ok {
		return g.result(mark), errors.InvalidArgumentf("no handler for %s", intent.Action())
	}

	// 1. Ход игрока
	res, err := handler(handlers.Context{Ctx: ctx, World: w, Actor: w.Player}, intent)
	if err != nil {
		log.WithError(err).Debug("Intent rejected")
		return g.result(mark), err
	}
	if res.Free {
		out := g.result(mark)
		out.Acted, out.Free = true, true
		out.FOVRecomputed = g.updateFOV()
		out.Events = w.DrainEvents()
		log.Debug("Free action applied")
		return out, nil
	}

	// 2. События хендлера (смена уровня) или ход монстров
	if res.Event != nil {
		if err := g.processEvent(*res.Event); err != nil {
			log.WithError(err).Warn("Event rejected")
			return g.result(mark), err
		}
	} else if !w.GameOver {
		if err := systems.RunAI(ctx, w); err != nil {
			return g.result(mark), errors.Wrap(err, "ai pass")
		}
	}

	w.Turn++
	recomputed := g.updateFOV()

	out := g.result(mark)
	out.Acted = true
	out.FOVRecomputed = recomputed
	out.Events = w.DrainEvents()

	// 3. Автосохранение между ходами
	if g.checkpointer != nil {
		out.Saved, out.SaveErr = g.checkpointer.AfterTick(ctx, g)
	}

	if w.GameOver {
		log.Info("Player died")
	}
	return out, nil
}

func (g *Game) result(mark int) TickResult {
	return TickResult{
		Turn:     g.world.Turn,
		Depth:    g.depth,
		GameOver: g.world.GameOver,
		Messages: g.world.Messages.After(mark),
		Warnings: g.world.DrainWarnings(),
	}
}
