package systems

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
)

func TestTransitionAI(t *testing.T) {
	ctx := context.Background()

	t.Run("confuse sets turns", func(t *testing.T) {
		ai := &domain.AI{State: enums.AIStateHostile}
		require.NoError(t, TransitionAI(ctx, ai, EventConfuse, 10))
		assert.Equal(t, enums.AIStateConfused, ai.State)
		assert.Equal(t, 10, ai.TurnsRemaining)
	})

	t.Run("re-confuse refreshes turns", func(t *testing.T) {
		ai := &domain.AI{State: enums.AIStateConfused, TurnsRemaining: 2}
		require.NoError(t, TransitionAI(ctx, ai, EventConfuse, 10))
		assert.Equal(t, enums.AIStateConfused, ai.State)
		assert.Equal(t, 10, ai.TurnsRemaining)
	})

	t.Run("paralyzed cannot flee", func(t *testing.T) {
		ai := &domain.AI{State: enums.AIStateParalyzed, TurnsRemaining: 3}
		err := TransitionAI(ctx, ai, EventFlee, 5)
		assert.True(t, errors.IsFailedPrecondition(err))
		assert.Equal(t, enums.AIStateParalyzed, ai.State, "state untouched on rejection")
		assert.Equal(t, 3, ai.TurnsRemaining)
	})

	t.Run("recover clears turns", func(t *testing.T) {
		ai := &domain.AI{State: enums.AIStateFleeing, TurnsRemaining: 4}
		require.NoError(t, TransitionAI(ctx, ai, EventRecover, 9))
		assert.Equal(t, enums.AIStateHostile, ai.State)
		assert.Zero(t, ai.TurnsRemaining)
	})
}

func TestRunAI_HostileApproaches(t *testing.T) {
	w := newTestWorld(t, 12, 5)
	addPlayer(t, w, domain.Point{X: 1, Y: 2})
	orc := addMonster(t, w, dungeon.Orc, domain.Point{X: 8, Y: 2})

	require.NoError(t, RunAI(context.Background(), w))
	assert.Equal(t, domain.Point{X: 7, Y: 2}, posOf(t, w, orc))
}

func TestRunAI_TieOrder(t *testing.T) {
	t.Run("south before diagonals", func(t *testing.T) {
		// S, SE и SW одинаково близки к игроку; порядок выбирает S.
		w := newTestWorld(t, 9, 9)
		addPlayer(t, w, domain.Point{X: 4, Y: 6})
		orc := addMonster(t, w, dungeon.Orc, domain.Point{X: 4, Y: 2})

		require.NoError(t, RunAI(context.Background(), w))
		assert.Equal(t, domain.Point{X: 4, Y: 3}, posOf(t, w, orc))
	})

	t.Run("east before west", func(t *testing.T) {
		// Стена перекрывает юг; обход справа и слева равноценен.
		w := newTestWorld(t, 9, 9)
		addPlayer(t, w, domain.Point{X: 4, Y: 6})
		orc := addMonster(t, w, dungeon.Orc, domain.Point{X: 4, Y: 2})
		for x := 3; x <= 5; x++ {
			require.NoError(t, w.Grid.SetKind(x, 3, enums.TileWall))
		}

		require.NoError(t, RunAI(context.Background(), w))
		assert.Equal(t, domain.Point{X: 5, Y: 2}, posOf(t, w, orc))
	})
}

func TestRunAI_AdjacentAttacks(t *testing.T) {
	w := newTestWorld(t, 6, 6)
	player := addPlayer(t, w, domain.Point{X: 2, Y: 2})
	orc := addMonster(t, w, dungeon.Orc, domain.Point{X: 3, Y: 3})

	require.NoError(t, RunAI(context.Background(), w))

	assert.Equal(t, domain.Point{X: 3, Y: 3}, posOf(t, w, orc), "attacker does not move")
	f, _ := ecs.Get[*domain.Fighter](w.Store, player)
	assert.Equal(t, domain.PlayerHP-1, f.HP)
}

func TestRunAI_ParalyzedDoesNothing(t *testing.T) {
	w := newTestWorld(t, 6, 6)
	player := addPlayer(t, w, domain.Point{X: 2, Y: 2})
	orc := addMonster(t, w, dungeon.Orc, domain.Point{X: 3, Y: 2})
	ai, _ := ecs.Get[*domain.AI](w.Store, orc)
	require.NoError(t, TransitionAI(context.Background(), ai, EventParalyze, 2))

	require.NoError(t, RunAI(context.Background(), w))
	f, _ := ecs.Get[*domain.Fighter](w.Store, player)
	assert.Equal(t, domain.PlayerHP, f.HP)
	assert.Equal(t, 1, ai.TurnsRemaining)

	require.NoError(t, RunAI(context.Background(), w))
	assert.Equal(t, enums.AIStateHostile, ai.State, "paralysis wears off")

	require.NoError(t, RunAI(context.Background(), w))
	assert.Equal(t, domain.PlayerHP-1, f.HP)
}

func TestRunAI_ConfusedWandersAndRecovers(t *testing.T) {
	w := newTestWorld(t, 12, 12)
	addPlayer(t, w, domain.Point{X: 1, Y: 1})
	orc := addMonster(t, w, dungeon.Orc, domain.Point{X: 6, Y: 6})
	ai, _ := ecs.Get[*domain.AI](w.Store, orc)
	require.NoError(t, TransitionAI(context.Background(), ai, EventConfuse, 3))

	for range 3 {
		before := posOf(t, w, orc)
		require.NoError(t, RunAI(context.Background(), w))
		assert.True(t, before.IsAdjacent(posOf(t, w, orc)), "confused step is one tile")
	}
	assert.Equal(t, enums.AIStateHostile, ai.State)
}

func TestRunAI_FleeingMovesAway(t *testing.T) {
	w := newTestWorld(t, 12, 5)
	addPlayer(t, w, domain.Point{X: 3, Y: 2})
	orc := addMonster(t, w, dungeon.Orc, domain.Point{X: 6, Y: 2})
	ai, _ := ecs.Get[*domain.AI](w.Store, orc)
	require.NoError(t, TransitionAI(context.Background(), ai, EventFlee, 5))

	require.NoError(t, RunAI(context.Background(), w))
	after := posOf(t, w, orc)
	assert.Greater(t, after.Chebyshev(domain.Point{X: 3, Y: 2}), 3)
}

// Враг замурован в отдельной камере: путь до игрока не существует, но
// свободная соседняя клетка есть, и ход всё равно делается.
func TestRunAI_WalledOffHostileStillMoves(t *testing.T) {
	w := newTestWorld(t, 20, 9)
	addPlayer(t, w, domain.Point{X: 2, Y: 4})
	for y := range 9 {
		require.NoError(t, w.Grid.SetKind(10, y, enums.TileWall))
	}
	orc := addMonster(t, w, dungeon.Orc, domain.Point{X: 15, Y: 4})

	for range 5 {
		before := posOf(t, w, orc)
		require.NoError(t, RunAI(context.Background(), w))
		after := posOf(t, w, orc)
		assert.True(t, before.IsAdjacent(after), "moved from %v to %v", before, after)
		assert.True(t, w.Grid.IsWalkable(after.X, after.Y))
		assert.Greater(t, after.X, 10)
	}
}

func TestRunAI_MonstersDoNotStack(t *testing.T) {
	w := newTestWorld(t, 12, 3)
	addPlayer(t, w, domain.Point{X: 1, Y: 1})
	a := addMonster(t, w, dungeon.Orc, domain.Point{X: 4, Y: 1})
	b := addMonster(t, w, dungeon.Orc, domain.Point{X: 5, Y: 1})

	for range 4 {
		require.NoError(t, RunAI(context.Background(), w))
		assert.NotEqual(t, posOf(t, w, a), posOf(t, w, b))
	}
}
