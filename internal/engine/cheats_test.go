package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
)

func withCheats(g *Game) *Game {
	g.cfg.Cheats = true
	g.registerHandlers()
	return g
}

func TestCheats_DisabledByDefault(t *testing.T) {
	g := createTestGame(t, 8, 8)

	for _, intent := range []handlers.Intent{
		handlers.Teleport{To: domain.Point{X: 3, Y: 3}},
		handlers.Spawn{Template: "orc"},
		handlers.Heal{},
		handlers.Kill{Target: g.Player()},
	} {
		res, err := g.Tick(context.Background(), intent)
		assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err), intent.Action().String())
		assert.False(t, res.Acted)
	}
	assert.Equal(t, domain.Point{X: 1, Y: 1}, playerPos(t, g))
}

func TestCheats_FreeActionsSkipMonsters(t *testing.T) {
	g := withCheats(createTestGame(t, 10, 10))
	orc, err := dungeon.SpawnMonster(g.World().Store, dungeon.Orc, domain.Point{X: 8, Y: 8})
	require.NoError(t, err)

	res, err := g.Tick(context.Background(), handlers.Teleport{To: domain.Point{X: 7, Y: 8}})
	require.NoError(t, err)
	assert.True(t, res.Acted)
	assert.True(t, res.Free)
	assert.True(t, res.FOVRecomputed)
	assert.Zero(t, res.Turn)
	assert.Equal(t, domain.Point{X: 7, Y: 8}, playerPos(t, g))

	// Орк рядом и в поле зрения, но бесплатное действие его не будит
	f, _ := ecs.Get[*domain.Fighter](g.World().Store, g.Player())
	assert.Equal(t, f.MaxHP, f.HP)

	res, err = g.Tick(context.Background(), handlers.Kill{Target: orc})
	require.NoError(t, err)
	assert.Zero(t, res.Turn)
	assert.False(t, g.World().Store.Alive(orc))
	assert.NotEmpty(t, res.Events)
}

func TestCheats_FreeActionSkipsAutoSave(t *testing.T) {
	g := withCheats(createTestGame(t, 8, 8))
	g.cfg.AutoSaveInterval = 1
	saver := &fakeSaver{}
	g.SetSaver(saver)

	res, err := g.Tick(context.Background(), handlers.Spawn{Template: "healing_potion"})
	require.NoError(t, err)
	assert.False(t, res.Saved)
	assert.Empty(t, saver.turns)
}
