// Package admin - отладочные команды. Движок регистрирует их только при
// включённых читах, ход они не тратят.
package admin

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
)

func free() handlers.Result {
	return handlers.Result{Free: true}
}

func logger(ctx handlers.Context, cmd string) logrus.FieldLogger {
	return ctx.World.Log.WithFields(logrus.Fields{
		"component": "admin_handler",
		"command":   cmd,
		"actor_id":  ctx.Actor,
	})
}

// HandleTeleport переносит игрока в заданную клетку.
func HandleTeleport(ctx handlers.Context, t handlers.Teleport) (handlers.Result, error) {
	if err := systems.TeleportTo(ctx.World, ctx.Actor, t.To); err != nil {
		return handlers.EmptyResult(), err
	}
	ctx.World.Say(domain.MessageInfo, fmt.Sprintf("Телепорт в (%d,%d).", t.To.X, t.To.Y))
	logger(ctx, "teleport").WithField("to", t.To).Info("Admin teleport")
	return free(), nil
}

// HandleSpawn создаёт монстра на первой свободной соседней клетке или
// предмет под ногами игрока.
func HandleSpawn(ctx handlers.Context, s handlers.Spawn) (handlers.Result, error) {
	w := ctx.World
	pos, err := ecs.Require[*domain.Position](w.Store, ctx.Actor)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	at := pos.Point()

	var id types.EntityID
	var name string
	if tmpl, ok := dungeon.MonsterTemplates[s.Template]; ok {
		spot, ok := systems.FreeNeighbor(w, at)
		if !ok {
			return handlers.EmptyResult(), errors.FailedPreconditionf("no free tile next to (%d,%d)", at.X, at.Y)
		}
		id, err = dungeon.SpawnMonster(w.Store, tmpl, spot)
		name = tmpl.Name
	} else if tmpl, ok := dungeon.ItemTemplates[s.Template]; ok {
		id, err = dungeon.SpawnItem(w.Store, tmpl, &at)
		name = tmpl.Name
	} else {
		return handlers.EmptyResult(), errors.NotFoundf("template %q", s.Template)
	}
	if err != nil {
		return handlers.EmptyResult(), errors.Wrap(err, "spawn")
	}

	w.Say(domain.MessageInfo, fmt.Sprintf("Призвано: %s.", name))
	logger(ctx, "spawn").WithFields(logrus.Fields{
		"template":  s.Template,
		"entity_id": id,
	}).Info("Admin spawn")
	return free(), nil
}

// HandleHeal восстанавливает игроку здоровье до максимума.
func HandleHeal(ctx handlers.Context) (handlers.Result, error) {
	f, err := ecs.Require[*domain.Fighter](ctx.World.Store, ctx.Actor)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	if f.HP >= f.MaxHP {
		return handlers.EmptyResult(), errors.FailedPrecondition("already at full health")
	}
	f.HP = f.MaxHP
	ctx.World.Say(domain.MessageInfo, "Здоровье восстановлено.")
	logger(ctx, "heal").Info("Admin heal")
	return free(), nil
}

// HandleKill убивает цель без начисления опыта. Себя убить нельзя.
func HandleKill(ctx handlers.Context, k handlers.Kill) (handlers.Result, error) {
	w := ctx.World
	if k.Target == ctx.Actor {
		return handlers.EmptyResult(), errors.InvalidArgument("cannot kill yourself")
	}
	f, err := ecs.Require[*domain.Fighter](w.Store, k.Target)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	if f.IsDead() {
		return handlers.EmptyResult(), errors.FailedPreconditionf("entity %s is already dead", k.Target)
	}
	// Без позиции HandleDeath упадёт уже после урона.
	if _, err := ecs.Require[*domain.Position](w.Store, k.Target); err != nil {
		return handlers.EmptyResult(), err
	}

	f.TakeDamage(f.HP)
	if _, err := systems.HandleDeath(w, k.Target, types.NilEntityID); err != nil {
		return handlers.EmptyResult(), errors.Wrap(err, "kill")
	}
	logger(ctx, "kill").WithField("target_id", k.Target).Info("Admin kill")
	return free(), nil
}
