package actions

import (
	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
)

// HandleUse обрабатывает команду USE_ITEM - зелья, свитки, экипировка
func HandleUse(ctx handlers.Context, u handlers.UseItem) (handlers.Result, error) {
	log := ctx.World.Log.WithFields(logrus.Fields{
		"component": "use_handler",
		"actor_id":  ctx.Actor,
		"item_id":   u.Item,
	})

	out, err := systems.UseItem(ctx.Ctx, ctx.World, ctx.Actor, u.Item, u.Target)
	if err != nil {
		log.WithError(err).Debug("Item use rejected")
		return handlers.EmptyResult(), err
	}

	log.WithFields(logrus.Fields{
		"consumed": out.Consumed,
		"affected": len(out.Affected),
	}).Debug("Item used")
	return handlers.EmptyResult(), nil
}
