package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/infrastructure/storage"
)

// Saver - то, куда пишется автосохранение (storage.Manager).
type Saver interface {
	Save(ctx context.Context, st storage.State, slot int) error
}

// Checkpointer сохраняет партию в слот автосохранения каждые interval ходов.
// Вызывается синхронно между ходами, поэтому мир в момент записи не меняется.
type Checkpointer struct {
	saver    Saver
	interval int
	slot     int
	log      logrus.FieldLogger
}

func NewCheckpointer(saver Saver, interval int, log logrus.FieldLogger) *Checkpointer {
	return &Checkpointer{
		saver:    saver,
		interval: interval,
		slot:     AutoSaveSlot,
		log:      log.WithField("component", "checkpointer"),
	}
}

// Due - пора ли сохраняться после хода turn.
func (c *Checkpointer) Due(turn int) bool {
	return c.interval > 0 && turn > 0 && turn%c.interval == 0
}

// AfterTick пишет сохранение, если подошёл срок. Ошибка записи состояние
// партии не меняет: она только возвращается вызывающему.
func (c *Checkpointer) AfterTick(ctx context.Context, g *Game) (bool, error) {
	if !c.Due(g.Turn()) {
		return false, nil
	}
	log := c.log.WithFields(logrus.Fields{"turn": g.Turn(), "slot": c.slot})
	if err := c.saver.Save(ctx, g.State(), c.slot); err != nil {
		log.WithError(err).Error("Auto-save failed")
		return false, err
	}
	log.Info("Auto-save completed")
	return true, nil
}
