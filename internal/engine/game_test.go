package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/infrastructure/storage"
	"github.com/yuru-sha/roguelike-sub000/pkg/api"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
	"github.com/yuru-sha/roguelike-sub000/pkg/logger"
)

// Helper: Создает комнату w x h для тестов: стены по краю, внутри пол.
// Игрок стоит в (1,1).
func createTestGame(t *testing.T, w, h int) *Game {
	t.Helper()
	grid := domain.NewGrid(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			require.NoError(t, grid.SetKind(x, y, enums.TileFloor))
		}
	}

	store := ecs.NewStore()
	player, err := dungeon.CreatePlayer(store, domain.Point{X: 1, Y: 1})
	require.NoError(t, err)

	cfg := NewConfig()
	cfg.Seed = 7
	g, err := Resume(cfg, storage.State{Store: store, Grid: grid, Player: player, Depth: 1}, logger.Discard())
	require.NoError(t, err)
	return g
}

func playerPos(t *testing.T, g *Game) domain.Point {
	t.Helper()
	pos, ok := ecs.Get[*domain.Position](g.World().Store, g.Player())
	require.True(t, ok)
	return pos.Point()
}

func TestMove_Success(t *testing.T) {
	g := createTestGame(t, 6, 6)

	res, err := g.Tick(context.Background(), handlers.Move{DX: 1, DY: 0})
	require.NoError(t, err)

	assert.Equal(t, domain.Point{X: 2, Y: 1}, playerPos(t, g))
	assert.True(t, res.Acted)
	assert.True(t, res.FOVRecomputed)
	assert.Equal(t, 1, res.Turn)
}

func TestMove_Collision(t *testing.T) {
	g := createTestGame(t, 6, 6)
	require.NoError(t, g.World().Grid.SetKind(2, 1, enums.TileWall))

	res, err := g.Tick(context.Background(), handlers.Move{DX: 1, DY: 0})
	assert.True(t, errors.IsFailedPrecondition(err))

	// Координаты не должны измениться, ход не потрачен
	assert.Equal(t, domain.Point{X: 1, Y: 1}, playerPos(t, g))
	assert.False(t, res.Acted)
	assert.Zero(t, g.Turn())

	// Предупреждение уходит в ответ, журнал мира не меняется
	assert.Empty(t, res.Messages)
	assert.Zero(t, g.World().Messages.Total())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, domain.MessageWarning, res.Warnings[0].Kind)

	// Следующий ход предупреждения не повторяет
	res, err = g.Tick(context.Background(), handlers.Wait{})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
}

func TestMove_OutOfBounds(t *testing.T) {
	g := createTestGame(t, 3, 3)
	// Единственная клетка пола окружена стенами, за ними край карты.
	require.NoError(t, g.World().Grid.SetKind(0, 1, enums.TileFloor))
	_, err := g.Tick(context.Background(), handlers.Move{DX: -1, DY: 0})
	require.NoError(t, err)

	_, err = g.Tick(context.Background(), handlers.Move{DX: -1, DY: 0})
	assert.True(t, errors.IsOutOfBounds(err))
	assert.Equal(t, domain.Point{X: 0, Y: 1}, playerPos(t, g))
}

func TestTick_InvalidIntent(t *testing.T) {
	g := createTestGame(t, 6, 6)

	tests := []struct {
		name   string
		intent handlers.Intent
	}{
		{"step too long", handlers.Move{DX: 2}},
		{"zero step", handlers.Move{}},
		{"bad stairs", handlers.UseStairs{Direction: "sideways"}},
		{"no item", handlers.Drop{}},
		{"no slot", handlers.Unequip{}},
		{"nil intent", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Tick(context.Background(), tt.intent)
			assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
			assert.Zero(t, g.Turn())
		})
	}
}

func TestTick_GameOverRejectsIntents(t *testing.T) {
	g := createTestGame(t, 6, 6)
	g.World().GameOver = true

	_, err := g.Tick(context.Background(), handlers.Wait{})
	assert.True(t, errors.IsFailedPrecondition(err))
}

func TestNewGame(t *testing.T) {
	cfg := NewConfig()
	cfg.Seed = 1234

	g, err := NewGame(cfg, logger.Discard())
	require.NoError(t, err)

	w := g.World()
	assert.Equal(t, 80, w.Grid.Width())
	assert.Equal(t, 43, w.Grid.Height())
	assert.Equal(t, 1, g.Depth())
	assert.NotEmpty(t, g.Rooms())
	assert.NotEmpty(t, g.RunID())

	start := playerPos(t, g)
	assert.True(t, w.Grid.IsWalkable(start.X, start.Y))
	assert.Equal(t, g.Rooms()[0].Center(), start)
	assert.True(t, w.IsVisible(start), "player sees own tile")
	assert.True(t, w.Grid.IsExplored(start.X, start.Y))
}

func TestNewGame_SameSeedSameWorld(t *testing.T) {
	cfg := NewConfig()
	cfg.Seed = 99

	a, err := NewGame(cfg, nil)
	require.NoError(t, err)
	b, err := NewGame(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Rooms(), b.Rooms())
	assert.Equal(t, a.World().Store.Len(), b.World().Store.Len())
	assert.Equal(t, playerPos(t, a), playerPos(t, b))
}

func TestNewGame_InvalidConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.RoomMinSize = 12
	cfg.RoomMaxSize = 8

	_, err := NewGame(cfg, nil)
	assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}

func TestResume_RequiresPlayer(t *testing.T) {
	store := ecs.NewStore()
	_, err := Resume(NewConfig(), storage.State{Store: store, Grid: domain.NewGrid(4, 4), Player: types.PackEntityID(0, 9)}, nil)
	assert.True(t, errors.IsComponentMissing(err))
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, 80, cfg.MapWidth)
		assert.Equal(t, 43, cfg.MapHeight)
		assert.Equal(t, 6, cfg.RoomMinSize)
		assert.Equal(t, 10, cfg.RoomMaxSize)
		assert.Equal(t, 30, cfg.MaxRooms)
		assert.Equal(t, 10, cfg.TorchRadius)
		assert.Equal(t, 5, cfg.MaxBackupFiles)
		assert.Equal(t, 100, cfg.AutoSaveInterval)
		assert.Equal(t, "file", cfg.SaveBackend)
		assert.NotZero(t, cfg.Seed)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("SEED", "42")
		t.Setenv("MAP_WIDTH", "60")
		t.Setenv("SAVE_BACKEND", "sqlite")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, int64(42), cfg.Seed)
		assert.Equal(t, 60, cfg.MapWidth)
		assert.Equal(t, "sqlite", cfg.SaveBackend)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Config)
		}{
			{"min above max", func(c *Config) { c.RoomMinSize = 11 }},
			{"room larger than map", func(c *Config) { c.MapHeight = 9 }},
			{"negative torch", func(c *Config) { c.TorchRadius = -1 }},
			{"unknown backend", func(c *Config) { c.SaveBackend = "tape" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := NewConfig()
				tt.mutate(&cfg)
				assert.Error(t, cfg.Validate())
			})
		}
	})
}

func TestDecode(t *testing.T) {
	cmd := func(action string, payload any) api.ClientCommand {
		raw, _ := json.Marshal(payload)
		return api.ClientCommand{Action: action, Payload: raw}
	}

	intent, err := handlers.Decode(cmd("move", api.DirectionPayload{Dx: -1, Dy: 1}))
	require.NoError(t, err)
	assert.Equal(t, handlers.Move{DX: -1, DY: 1}, intent)

	intent, err = handlers.Decode(cmd("STAIRS", api.StairsPayload{Direction: "Down"}))
	require.NoError(t, err)
	assert.Equal(t, handlers.UseStairs{Direction: domain.StairsDown}, intent)

	intent, err = handlers.Decode(cmd("USE_ITEM", api.ItemPayload{ItemID: "4294967298", Target: &api.PositionPayload{X: 3, Y: 4}}))
	require.NoError(t, err)
	use := intent.(handlers.UseItem)
	assert.Equal(t, types.PackEntityID(1, 2), use.Item)
	assert.Equal(t, &domain.Point{X: 3, Y: 4}, use.Target.Tile)

	intent, err = handlers.Decode(cmd("UNEQUIP", api.SlotPayload{Slot: "main_hand"}))
	require.NoError(t, err)
	assert.Equal(t, handlers.Unequip{Slot: enums.SlotMainHand}, intent)

	intent, err = handlers.Decode(cmd("admin_teleport", api.TeleportPayload{X: 4, Y: 2}))
	require.NoError(t, err)
	assert.Equal(t, handlers.Teleport{To: domain.Point{X: 4, Y: 2}}, intent)

	intent, err = handlers.Decode(cmd("ADMIN_SPAWN", api.SpawnPayload{Template: "Orc"}))
	require.NoError(t, err)
	assert.Equal(t, handlers.Spawn{Template: "orc"}, intent)

	_, err = handlers.Decode(cmd("ADMIN_KILL", api.KillPayload{}))
	assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))

	_, err = handlers.Decode(cmd("MOVE", api.DirectionPayload{Dx: 3}))
	assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))

	_, err = handlers.Decode(cmd("DANCE", nil))
	assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))

	_, err = handlers.Decode(cmd("DROP", api.ItemPayload{ItemID: "abc"}))
	assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
}
