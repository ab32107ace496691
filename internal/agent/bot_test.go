package agent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuru-sha/roguelike-sub000/internal/agent"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/engine"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/infrastructure/storage"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
	"github.com/yuru-sha/roguelike-sub000/pkg/logger"
)

// room - комната 10x5 с игроком в (1,2); setup досаживает сущности.
func room(t *testing.T, setup func(store *ecs.Store, grid *domain.Grid, player types.EntityID)) *engine.Game {
	t.Helper()
	grid := domain.NewGrid(10, 5)
	for y := 1; y < 4; y++ {
		for x := 1; x < 9; x++ {
			require.NoError(t, grid.SetKind(x, y, enums.TileFloor))
		}
	}
	store := ecs.NewStore()
	player, err := dungeon.CreatePlayer(store, domain.Point{X: 1, Y: 2})
	require.NoError(t, err)
	if setup != nil {
		setup(store, grid, player)
	}

	cfg := engine.NewConfig()
	cfg.Seed = 1
	g, err := engine.Resume(cfg, storage.State{Store: store, Grid: grid, Player: player, Depth: 1}, logger.Discard())
	require.NoError(t, err)
	return g
}

func TestBot_Decide(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, store *ecs.Store, grid *domain.Grid, player types.EntityID)
		want  func(t *testing.T, intent handlers.Intent)
	}{
		{
			name: "nothing to do in explored room",
			want: func(t *testing.T, intent handlers.Intent) {
				assert.Equal(t, handlers.Wait{}, intent)
			},
		},
		{
			name: "attacks adjacent monster",
			setup: func(t *testing.T, store *ecs.Store, _ *domain.Grid, _ types.EntityID) {
				_, err := dungeon.SpawnMonster(store, dungeon.Orc, domain.Point{X: 2, Y: 2})
				require.NoError(t, err)
			},
			want: func(t *testing.T, intent handlers.Intent) {
				assert.Equal(t, handlers.Move{DX: 1, DY: 0}, intent)
			},
		},
		{
			name: "picks up item underfoot",
			setup: func(t *testing.T, store *ecs.Store, _ *domain.Grid, _ types.EntityID) {
				_, err := dungeon.SpawnItem(store, dungeon.Sword, &domain.Point{X: 1, Y: 2})
				require.NoError(t, err)
			},
			want: func(t *testing.T, intent handlers.Intent) {
				assert.Equal(t, handlers.Pickup{}, intent)
			},
		},
		{
			name: "descends from stairs",
			setup: func(t *testing.T, _ *ecs.Store, grid *domain.Grid, _ types.EntityID) {
				require.NoError(t, grid.SetKind(1, 2, enums.TileStairsDown))
			},
			want: func(t *testing.T, intent handlers.Intent) {
				assert.Equal(t, handlers.UseStairs{Direction: domain.StairsDown}, intent)
			},
		},
		{
			name: "walks to known stairs",
			setup: func(t *testing.T, _ *ecs.Store, grid *domain.Grid, _ types.EntityID) {
				require.NoError(t, grid.SetKind(7, 2, enums.TileStairsDown))
			},
			want: func(t *testing.T, intent handlers.Intent) {
				move, ok := intent.(handlers.Move)
				require.True(t, ok, "got %#v", intent)
				assert.Equal(t, 1, move.DX)
			},
		},
		{
			name: "drinks potion when hurt",
			setup: func(t *testing.T, store *ecs.Store, _ *domain.Grid, player types.EntityID) {
				potion, err := dungeon.SpawnItem(store, dungeon.HealingPotion, nil)
				require.NoError(t, err)
				inv, _ := ecs.Get[*domain.Inventory](store, player)
				inv.Add(potion)
				f, _ := ecs.Get[*domain.Fighter](store, player)
				f.HP = 5
			},
			want: func(t *testing.T, intent handlers.Intent) {
				_, ok := intent.(handlers.UseItem)
				assert.True(t, ok, "got %#v", intent)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := room(t, func(store *ecs.Store, grid *domain.Grid, player types.EntityID) {
				if tt.setup != nil {
					tt.setup(t, store, grid, player)
				}
			})
			bot := agent.NewBot(logger.Discard())
			tt.want(t, bot.Decide(g.Snapshot()))
		})
	}
}

func TestBot_ExploresTowardUnknown(t *testing.T) {
	// Коридор длиннее радиуса факела: конец не виден и не исследован
	grid := domain.NewGrid(30, 3)
	for x := 1; x < 29; x++ {
		require.NoError(t, grid.SetKind(x, 1, enums.TileFloor))
	}
	store := ecs.NewStore()
	player, err := dungeon.CreatePlayer(store, domain.Point{X: 1, Y: 1})
	require.NoError(t, err)

	cfg := engine.NewConfig()
	cfg.TorchRadius = 4
	g, err := engine.Resume(cfg, storage.State{Store: store, Grid: grid, Player: player, Depth: 1}, logger.Discard())
	require.NoError(t, err)

	intent := agent.NewBot(logger.Discard()).Decide(g.Snapshot())
	assert.Equal(t, handlers.Move{DX: 1, DY: 0}, intent)
}

func TestBot_Play(t *testing.T) {
	cfg := engine.NewConfig()
	cfg.Seed = 99
	cfg.AutoSaveInterval = 0
	g, err := engine.NewGame(cfg, logger.Discard())
	require.NoError(t, err)

	turns := 0
	st, err := agent.NewBot(logger.Discard()).Play(context.Background(), g, 40, func(res engine.TickResult) {
		turns++
		assert.Equal(t, turns, res.Turn)
	})
	require.NoError(t, err)
	assert.Equal(t, st.Ticks, turns)
	assert.GreaterOrEqual(t, st.MaxDepth, 1)
	if !st.Died {
		assert.Equal(t, 40, st.Ticks)
	}
}

func TestBot_PlayStopsOnCancel(t *testing.T) {
	g := room(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := agent.NewBot(logger.Discard()).Play(ctx, g, 10, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, st.Ticks)
}
