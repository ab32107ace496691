// Package agent — безголовый игрок. Бот видит ровно то же, что клиент:
// снимок мира с туманом войны, и отвечает намерением на каждый ход.
package agent

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/engine"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
)

// HealThreshold - доля HP, ниже которой бот пьёт лечебное.
const HealThreshold = 0.5

// Bot выбирает действие по снимку. Приоритеты:
//  1. лечиться, если HP мало и есть чем;
//  2. бить соседнего врага;
//  3. подобрать предмет под ногами;
//  4. спуститься, если стоит на лестнице вниз;
//  5. идти к лестнице вниз по полю стоимостей, а пока её не видно,
//     к ближайшей границе исследованного;
//  6. ждать.
type Bot struct {
	log logrus.FieldLogger
}

func NewBot(log logrus.FieldLogger) *Bot {
	return &Bot{log: log.WithField("component", "bot")}
}

// view - локальная картина мира по снимку. Неисследованное считается стеной,
// чтобы не строить пути в неизвестность.
type view struct {
	grid     *domain.Grid
	explored map[domain.Point]bool
	hostiles map[domain.Point]bool
	me       domain.Point
	stairs   *domain.Point
}

func newView(snap engine.Snapshot) *view {
	v := &view{
		grid:     domain.NewGrid(max(snap.Width, 1), max(snap.Height, 1)),
		explored: make(map[domain.Point]bool, len(snap.Tiles)),
		hostiles: make(map[domain.Point]bool),
		me:       domain.Point{X: snap.Player.X, Y: snap.Player.Y},
	}
	for _, t := range snap.Tiles {
		p := domain.Point{X: t.X, Y: t.Y}
		_ = v.grid.SetKind(t.X, t.Y, t.Kind)
		v.explored[p] = true
		if t.Kind == enums.TileStairsDown {
			v.stairs = &p
		}
	}
	for _, e := range snap.Entities {
		if e.IsHostile && e.Fighter != nil && !e.Fighter.IsDead() {
			v.hostiles[domain.Point{X: e.X, Y: e.Y}] = true
		}
	}
	return v
}

func (v *view) canEnter(p domain.Point) bool {
	return v.grid.IsWalkable(p.X, p.Y) && !v.hostiles[p]
}

// Decide возвращает намерение на текущий ход. Всегда не nil.
func (b *Bot) Decide(snap engine.Snapshot) handlers.Intent {
	v := newView(snap)

	if intent, ok := b.heal(snap); ok {
		return intent
	}
	for _, d := range domain.Directions8 {
		if v.hostiles[v.me.Add(d)] {
			return handlers.Move{DX: d.X, DY: d.Y}
		}
	}
	if b.itemUnderfoot(snap) && len(snap.Player.Items) < snap.Player.Capacity {
		return handlers.Pickup{}
	}
	if v.stairs != nil && *v.stairs == v.me {
		return handlers.UseStairs{Direction: domain.StairsDown}
	}

	goal, ok := v.goal()
	if !ok {
		return handlers.Wait{}
	}
	step, err := v.stepToward(goal)
	if err != nil {
		b.log.WithError(err).Debug("No path, waiting")
		return handlers.Wait{}
	}
	return handlers.Move{DX: step.X - v.me.X, DY: step.Y - v.me.Y}
}

func (b *Bot) heal(snap engine.Snapshot) (handlers.Intent, bool) {
	f := snap.Player.Fighter
	if f.MaxHP == 0 || float64(f.HP) >= float64(f.MaxHP)*HealThreshold {
		return nil, false
	}
	for _, it := range snap.Player.Items {
		if it.Effect.Kind == domain.EffectHeal {
			return handlers.UseItem{Item: it.ID}, true
		}
	}
	return nil, false
}

func (b *Bot) itemUnderfoot(snap engine.Snapshot) bool {
	for _, e := range snap.Entities {
		if e.IsItem && !e.IsCorpse && e.X == snap.Player.X && e.Y == snap.Player.Y {
			return true
		}
	}
	return false
}

// goal - лестница вниз, если она известна и достижима, иначе ближайшая
// граница исследованного.
func (v *view) goal() (domain.Point, bool) {
	fromMe, err := systems.BuildCostField(v.grid, v.me, nil)
	if err != nil {
		return domain.Point{}, false
	}
	if v.stairs != nil {
		if _, ok := fromMe.At(*v.stairs); ok {
			return *v.stairs, true
		}
	}

	best, found := systems.Unreachable, false
	var goal domain.Point
	for y := range v.grid.Height() {
		for x := range v.grid.Width() {
			p := domain.Point{X: x, Y: y}
			if p == v.me || !v.grid.IsWalkable(x, y) || !v.isFrontier(p) {
				continue
			}
			if c, ok := fromMe.At(p); ok && c < best {
				best, goal, found = c, p, true
			}
		}
	}
	return goal, found
}

// isFrontier - проходимая клетка, у которой неисследован сосед по стороне.
// Углы комнат из-за стен видно не всегда, поэтому диагонали не считаются.
func (v *view) isFrontier(p domain.Point) bool {
	for _, d := range domain.Directions8[:4] {
		n := p.Add(d)
		if v.grid.InBounds(n.X, n.Y) && !v.explored[n] {
			return true
		}
	}
	return false
}

func (v *view) stepToward(goal domain.Point) (domain.Point, error) {
	field, err := systems.BuildCostField(v.grid, goal, func(p domain.Point) bool { return v.hostiles[p] })
	if err != nil {
		return v.me, err
	}
	return field.Toward(v.me, v.canEnter)
}

// Stats - итог прогона бота.
type Stats struct {
	Ticks    int
	Rejected int
	MaxDepth int
	Died     bool
	Saved    int
}

// Play ведёт партию до maxTicks принятых ходов, смерти игрока или отмены ctx.
// Отклонённое намерение заменяется ожиданием; ошибки сохранения не
// останавливают игру. onTick вызывается после каждого хода, может быть nil.
func (b *Bot) Play(ctx context.Context, g *engine.Game, maxTicks int, onTick func(engine.TickResult)) (Stats, error) {
	st := Stats{MaxDepth: g.Depth()}
	for st.Ticks < maxTicks && !g.GameOver() {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		intent := b.Decide(g.Snapshot())
		res, err := g.Tick(ctx, intent)
		if err != nil {
			st.Rejected++
			b.log.WithError(err).WithField("action", intent.Action().String()).Debug("Intent rejected, waiting")
			if res, err = g.Tick(ctx, handlers.Wait{}); err != nil {
				return st, errors.Wrap(err, "bot wait")
			}
		}

		st.Ticks++
		st.MaxDepth = max(st.MaxDepth, res.Depth)
		if res.Saved {
			st.Saved++
		}
		if onTick != nil {
			onTick(res)
		}
	}
	st.Died = g.GameOver()
	b.log.WithFields(logrus.Fields{
		"ticks":     st.Ticks,
		"rejected":  st.Rejected,
		"max_depth": st.MaxDepth,
		"died":      st.Died,
	}).Info("Bot run finished")
	return st, nil
}
