package dungeon

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
)

func scenarioConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 80, 43
	cfg.MaxRooms = 20
	cfg.RoomMinSize, cfg.RoomMaxSize = 6, 10
	return cfg
}

// reachable - BFS по 4 направлениям по проходимым клеткам.
func reachable(g *domain.Grid, from domain.Point) map[domain.Point]bool {
	seen := map[domain.Point]bool{from: true}
	queue := []domain.Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range domain.Directions8[:4] {
			n := p.Add(d)
			if !seen[n] && g.IsWalkable(n.X, n.Y) {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return seen
}

func TestGenerate_Scenario80x43(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		level, err := Generate(scenarioConfig(), 1, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		require.NotEmpty(t, level.Rooms, "seed %d", seed)
		assert.True(t, level.Rooms[0].ContainsInterior(level.Start), "seed %d: start outside first room", seed)
		assert.True(t, level.Grid.IsWalkable(level.Start.X, level.Start.Y), "seed %d: start in a wall", seed)

		for i := range level.Rooms {
			r := level.Rooms[i]
			assert.True(t, r.X1() >= 0 && r.Y1() >= 0 && r.X2() < 80 && r.Y2() < 43, "seed %d: room %v out of bounds", seed, r)
			for j := i + 1; j < len(level.Rooms); j++ {
				assert.False(t, r.Intersects(level.Rooms[j]), "seed %d: rooms %d and %d overlap", seed, i, j)
			}
		}

		seen := reachable(level.Grid, level.Start)
		for i, r := range level.Rooms {
			assert.True(t, seen[r.Center()], "seed %d: room %d center unreachable", seed, i)
		}
		assert.True(t, seen[level.StairsDown], "seed %d: stairs unreachable", seed)
	}
}

// Тест вспомогательной функции пересечения комнат
func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10}   // Пересекается
	r3 := Rect{20, 20, 5, 5}   // Не пересекается
	r4 := Rect{10, 0, 5, 5}    // Касается рамкой
	r5 := Rect{11, 11, 3, 3}   // Вплотную по диагонали, но не касается

	assert.True(t, r1.Intersects(r2))
	assert.False(t, r1.Intersects(r3))
	assert.True(t, r1.Intersects(r4), "shared border counts as overlap")
	assert.False(t, r1.Intersects(r5))
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(scenarioConfig(), 3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Generate(scenarioConfig(), 3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a.Rooms, b.Rooms)
	assert.Equal(t, a.Start, b.Start)
}

func TestGenerate_Stairs(t *testing.T) {
	t.Run("first level has no way up", func(t *testing.T) {
		level, err := Generate(scenarioConfig(), 1, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		assert.False(t, level.HasStairsUp)
		kind, _ := level.Grid.KindAt(level.StairsDown.X, level.StairsDown.Y)
		assert.Equal(t, enums.TileStairsDown, kind)
	})

	t.Run("deeper levels start on stairs up", func(t *testing.T) {
		level, err := Generate(scenarioConfig(), 2, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		require.True(t, level.HasStairsUp)
		kind, _ := level.Grid.KindAt(level.Start.X, level.Start.Y)
		assert.Equal(t, enums.TileStairsUp, kind)
	})
}

func TestGenerate_FallbackRoom(t *testing.T) {
	cfg := scenarioConfig()
	cfg.MaxRooms = 0

	level, err := Generate(cfg, 1, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, level.Rooms, 1)
	assert.True(t, level.Grid.IsWalkable(level.Start.X, level.Start.Y))
	assert.NotEqual(t, level.Start, level.StairsDown)
	assert.True(t, reachable(level.Grid, level.Start)[level.StairsDown])
}

func TestGenerate_Sparse(t *testing.T) {
	level, err := NewLevel(1, rand.New(rand.NewSource(5))).
		WithSize(60, 30).
		WithRoomSize(5, 8).
		WithMaxRooms(12).
		Sparse().
		Build()
	require.NoError(t, err)

	absent := 0
	for y := 0; y < level.Grid.Height(); y++ {
		for x := 0; x < level.Grid.Width(); x++ {
			if _, ok := level.Grid.Get(x, y); !ok {
				absent++
			}
		}
	}
	assert.Positive(t, absent, "sparse grid should keep unallocated cells")

	seen := reachable(level.Grid, level.Start)
	for _, r := range level.Rooms {
		assert.True(t, seen[r.Center()])
	}

	// Каждая открытая клетка отделена от пустоты стеной или другой открытой клеткой.
	for y := 0; y < level.Grid.Height(); y++ {
		for x := 0; x < level.Grid.Width(); x++ {
			if !level.Grid.IsWalkable(x, y) {
				continue
			}
			for _, d := range domain.Directions8 {
				nx, ny := x+d.X, y+d.Y
				if !level.Grid.InBounds(nx, ny) {
					continue
				}
				_, ok := level.Grid.Get(nx, ny)
				assert.True(t, ok, "open cell (%d,%d) touches void at (%d,%d)", x, y, nx, ny)
			}
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny map", func(c *Config) { c.Width = 2 }},
		{"min above max", func(c *Config) { c.RoomMinSize = 11 }},
		{"room wider than map", func(c *Config) { c.Width = 10 }},
		{"negative rooms", func(c *Config) { c.MaxRooms = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}
