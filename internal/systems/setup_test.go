package systems

import (
	"math/rand"
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
	"github.com/yuru-sha/roguelike-sub000/pkg/logger"
)

var testLog logrus.FieldLogger

func TestMain(m *testing.M) {
	testLog = logger.New(logger.Config{Level: "error"})
	os.Exit(m.Run())
}

// openGrid - пол w x h, обнесённый стеной.
func openGrid(w, h int) *domain.Grid {
	g := domain.NewGrid(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			_ = g.SetKind(x, y, enums.TileFloor)
		}
	}
	return g
}

func newTestWorld(t *testing.T, w, h int) *World {
	t.Helper()
	return NewWorld(ecs.NewStore(), openGrid(w, h), rand.New(rand.NewSource(7)), testLog)
}

func addPlayer(t *testing.T, w *World, at domain.Point) types.EntityID {
	t.Helper()
	id, err := dungeon.CreatePlayer(w.Store, at)
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	w.Player = id
	return id
}

func addMonster(t *testing.T, w *World, tmpl dungeon.MonsterTemplate, at domain.Point) types.EntityID {
	t.Helper()
	id, err := dungeon.SpawnMonster(w.Store, tmpl, at)
	if err != nil {
		t.Fatalf("spawn %s: %v", tmpl.Key, err)
	}
	return id
}

func addItem(t *testing.T, w *World, tmpl dungeon.ItemTemplate, at *domain.Point) types.EntityID {
	t.Helper()
	id, err := dungeon.SpawnItem(w.Store, tmpl, at)
	if err != nil {
		t.Fatalf("spawn %s: %v", tmpl.Key, err)
	}
	return id
}

func posOf(t *testing.T, w *World, id types.EntityID) domain.Point {
	t.Helper()
	pos, ok := ecs.Get[*domain.Position](w.Store, id)
	if !ok {
		t.Fatalf("%s has no position", id)
	}
	return pos.Point()
}
