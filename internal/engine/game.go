package engine

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers/actions"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers/admin"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/infrastructure/storage"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
)

// Game - контекст одной партии: мир хода, текущая глубина, комнаты уровня,
// видимость игрока и автосохранение. Не потокобезопасен: им владеет одна горутина.
type Game struct {
	cfg   Config
	world *systems.World
	depth int
	rooms []dungeon.Rect
	runID string

	vision       *systems.Visibility
	populator    dungeon.Populator
	handlers     map[domain.ActionType]handlers.HandlerFunc
	checkpointer *Checkpointer
	log          logrus.FieldLogger
}

// NewGame генерирует первый уровень, создаёт игрока и расселяет комнаты.
func NewGame(cfg Config, log logrus.FieldLogger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log = defaultLogger(log)
	rng := rand.New(rand.NewSource(cfg.Seed))

	built, err := buildInitialWorld(cfg, rng)
	if err != nil {
		return nil, err
	}
	level, pop := built.level, built.pop

	world := systems.NewWorld(built.store, level.Grid, rng, log)
	world.Player = built.player

	g := newGame(cfg, world, log)
	g.depth = level.Depth
	g.rooms = level.Rooms
	g.runID = uuid.NewString()
	g.updateFOV()

	world.Say(domain.MessageInfo, "Добро пожаловать в подземелье.")
	log.WithFields(logrus.Fields{
		"seed":     cfg.Seed,
		"rooms":    len(level.Rooms),
		"monsters": pop.Monsters,
		"items":    pop.Items,
		"run_id":   g.runID,
	}).Info("New game started")
	return g, nil
}

// Resume собирает партию из загруженного состояния.
func Resume(cfg Config, st storage.State, log logrus.FieldLogger) (*Game, error) {
	if st.Store == nil || st.Grid == nil {
		return nil, errors.InvalidArgument("state has no store or grid")
	}
	if !st.Store.Alive(st.Player) || !ecs.Has[*domain.Position](st.Store, st.Player) {
		return nil, errors.ComponentMissingf("player %s is missing from the save", st.Player)
	}
	log = defaultLogger(log)

	// Генератор не сохраняется: продолжаем от сида и номера хода.
	rng := rand.New(rand.NewSource(cfg.Seed + int64(st.Turn)))
	world := systems.NewWorld(st.Store, st.Grid, rng, log)
	world.Player = st.Player
	world.Turn = st.Turn
	for _, m := range st.Messages {
		world.Messages.Add(m)
	}
	if f, ok := ecs.Get[*domain.Fighter](st.Store, st.Player); ok && f.IsDead() {
		world.GameOver = true
	}

	g := newGame(cfg, world, log)
	g.depth = max(st.Depth, 1)
	g.runID = st.RunID
	if g.runID == "" {
		g.runID = uuid.NewString()
	}
	g.updateFOV()

	log.WithFields(logrus.Fields{
		"run_id": g.runID,
		"depth":  g.depth,
		"turn":   st.Turn,
	}).Info("Game resumed")
	return g, nil
}

func newGame(cfg Config, world *systems.World, log logrus.FieldLogger) *Game {
	g := &Game{
		cfg:       cfg,
		world:     world,
		depth:     1,
		vision:    systems.NewVisibility(cfg.TorchRadius),
		populator: cfg.Populator(),
		handlers:  make(map[domain.ActionType]handlers.HandlerFunc),
		log:       log,
	}
	g.registerHandlers()
	return g
}

func (g *Game) registerHandlers() {
	g.handlers[domain.ActionMove] = handlers.WithIntent(actions.HandleMove)
	g.handlers[domain.ActionWait] = handlers.WithEmptyIntent(actions.HandleWait)
	g.handlers[domain.ActionStairs] = handlers.WithIntent(actions.HandleStairs)
	g.handlers[domain.ActionPickup] = handlers.WithEmptyIntent(actions.HandlePickup)
	g.handlers[domain.ActionUseItem] = handlers.WithIntent(actions.HandleUse)
	g.handlers[domain.ActionDrop] = handlers.WithIntent(actions.HandleDrop)
	g.handlers[domain.ActionEquip] = handlers.WithIntent(actions.HandleEquip)
	g.handlers[domain.ActionUnequip] = handlers.WithIntent(actions.HandleUnequip)

	if !g.cfg.Cheats {
		return
	}
	g.handlers[domain.ActionAdminTeleport] = handlers.WithIntent(admin.HandleTeleport)
	g.handlers[domain.ActionAdminSpawn] = handlers.WithIntent(admin.HandleSpawn)
	g.handlers[domain.ActionAdminHeal] = handlers.WithEmptyIntent(admin.HandleHeal)
	g.handlers[domain.ActionAdminKill] = handlers.WithIntent(admin.HandleKill)
	g.log.WithField("component", "engine").Warn("Cheats enabled")
}

// SetSaver включает автосохранение каждые AutoSaveInterval ходов.
// nil или нулевой интервал выключают его.
func (g *Game) SetSaver(s Saver) {
	if s == nil || g.cfg.AutoSaveInterval <= 0 {
		g.checkpointer = nil
		return
	}
	g.checkpointer = NewCheckpointer(s, g.cfg.AutoSaveInterval, g.log)
}

// State - снимок для сохранения. Хранилище и сетка отдаются по ссылке:
// сохранять нужно между ходами, пока мир не меняется.
func (g *Game) State() storage.State {
	return storage.State{
		Store:    g.world.Store,
		Grid:     g.world.Grid,
		Player:   g.world.Player,
		Depth:    g.depth,
		Turn:     g.world.Turn,
		RunID:    g.runID,
		Messages: g.world.Messages.All(),
	}
}

// World - мир для чтения (агенты, тесты). Менять его в обход Tick нельзя.
func (g *Game) World() *systems.World { return g.world }

func (g *Game) Player() types.EntityID { return g.world.Player }
func (g *Game) Depth() int             { return g.depth }
func (g *Game) Turn() int              { return g.world.Turn }
func (g *Game) RunID() string          { return g.runID }
func (g *Game) Config() Config         { return g.cfg }
func (g *Game) GameOver() bool         { return g.world.GameOver }

// Rooms - комнаты текущего уровня. После загрузки сохранения список пуст.
func (g *Game) Rooms() []dungeon.Rect { return g.rooms }

// updateFOV пересчитывает поле зрения, если игрок сдвинулся.
func (g *Game) updateFOV() bool {
	pos, ok := ecs.Get[*domain.Position](g.world.Store, g.world.Player)
	if !ok {
		return false
	}
	recomputed := g.vision.Update(g.world.Grid, pos.Point(), g.log)
	g.world.Visible = g.vision.Visible()
	return recomputed
}

func defaultLogger(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	return log
}
