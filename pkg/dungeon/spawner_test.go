package dungeon

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

func TestChanceEntry_WeightAt(t *testing.T) {
	troll := MonsterChances[1]
	orc := MonsterChances[0]

	tests := []struct {
		depth     int
		wantOrc   int
		wantTroll int
	}{
		{1, 80, 0},
		{3, 80, 20},
		{5, 80, 30},
		{7, 0, 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantOrc, orc.WeightAt(tt.depth), "orc at %d", tt.depth)
		assert.Equal(t, tt.wantTroll, troll.WeightAt(tt.depth), "troll at %d", tt.depth)
	}
}

func TestChanceTable_Choose(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("gated by depth", func(t *testing.T) {
		for range 200 {
			key, ok := MonsterChances.Choose(1, rng)
			require.True(t, ok)
			assert.Equal(t, Orc.Key, key)
		}
		for range 200 {
			key, _ := MonsterChances.Choose(8, rng)
			assert.Equal(t, Troll.Key, key)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		_, ok := ChanceTable{{Key: "x", MinLevel: 5, Weights: []DepthWeight{{5, 1}}}}.Choose(1, rng)
		assert.False(t, ok)
	})
}

func TestPopulate_SkipsFirstRoom(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		level, err := Generate(DefaultConfig(), 4, rng)
		require.NoError(t, err)

		store := ecs.NewStore()
		_, err = CreatePlayer(store, level.Start)
		require.NoError(t, err)

		_, err = DefaultPopulator().Populate(store, level, rng)
		require.NoError(t, err)

		taken := make(map[domain.Point]bool)
		for id, pos := range ecs.Query1[*domain.Position](store) {
			p := pos.Point()
			assert.False(t, taken[p], "seed %d: two entities at %v", seed, p)
			taken[p] = true

			if ecs.Has[*domain.Inventory](store, id) {
				continue // игрок
			}
			assert.False(t, level.Rooms[0].ContainsInterior(p) && p != level.Start, "seed %d: spawn in first room", seed)
			kind, _ := level.Grid.KindAt(p.X, p.Y)
			assert.Equal(t, enums.TileFloor, kind)
		}
	}
}

func TestPlan_CreatesNothingUntilPlaced(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	level, err := Generate(DefaultConfig(), 4, rng)
	require.NoError(t, err)

	p := DefaultPopulator()
	p.MaxMonstersPerRoom = 5
	store := ecs.NewStore()
	reserved := level.Rooms[len(level.Rooms)-1].Center()

	plan, err := p.Plan(level, map[domain.Point]bool{reserved: true}, rng)
	require.NoError(t, err)
	require.NotEmpty(t, plan)
	assert.Zero(t, store.Len())
	for _, sp := range plan {
		assert.NotEqual(t, reserved, sp.At)
	}

	res, err := Place(store, plan)
	require.NoError(t, err)
	assert.Equal(t, len(plan), res.Monsters+res.Items)
	assert.Equal(t, len(plan), store.Len())
}

func TestPlan_UnknownTemplate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	level, err := Generate(DefaultConfig(), 1, rng)
	require.NoError(t, err)

	p := DefaultPopulator()
	p.MaxMonstersPerRoom = 50
	p.Monsters = ChanceTable{{Key: "dragon", MinLevel: 1, Weights: []DepthWeight{{1, 1}}}}

	_, err = p.Plan(level, nil, rng)
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func TestFactories(t *testing.T) {
	store := ecs.NewStore()

	player, err := CreatePlayer(store, domain.Point{X: 3, Y: 4})
	require.NoError(t, err)
	f, ok := ecs.Get[*domain.Fighter](store, player)
	require.True(t, ok)
	assert.Equal(t, domain.Fighter{HP: 30, MaxHP: 30, Defense: 2, Power: 5}, *f)
	lvl, _ := ecs.Get[*domain.Level](store, player)
	assert.Equal(t, 200, lvl.XPToNext)

	sword1, err := SpawnItem(store, Sword, nil)
	require.NoError(t, err)
	sword2, err := SpawnItem(store, Sword, nil)
	require.NoError(t, err)
	assert.False(t, ecs.Has[*domain.Position](store, sword1), "carried item has no position")

	eq1, _ := ecs.Get[*domain.Equipment](store, sword1)
	eq2, _ := ecs.Get[*domain.Equipment](store, sword2)
	assert.NotSame(t, eq1, eq2, "template equipment must be copied per item")
	assert.NotSame(t, Sword.Equipment, eq1)

	orc, err := SpawnMonster(store, Orc, domain.Point{X: 1, Y: 1})
	require.NoError(t, err)
	ai, ok := ecs.Get[*domain.AI](store, orc)
	require.True(t, ok)
	assert.Equal(t, enums.AIStateHostile, ai.State)
}
