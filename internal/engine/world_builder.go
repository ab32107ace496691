package engine

import (
	"math/rand"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
)

// builtWorld - результат сборки первого уровня.
type builtWorld struct {
	store  *ecs.Store
	level  *dungeon.Level
	player types.EntityID
	pop    dungeon.PopulateResult
}

// buildInitialWorld создает первый уровень, игрока и монстров с предметами.
func buildInitialWorld(cfg Config, rng *rand.Rand) (builtWorld, error) {
	level, err := dungeon.Generate(cfg.DungeonConfig(), 1, rng)
	if err != nil {
		return builtWorld{}, err
	}

	store := ecs.NewStore()
	player, err := dungeon.CreatePlayer(store, level.Start)
	if err != nil {
		return builtWorld{}, errors.Wrap(err, "create player")
	}

	pop, err := cfg.Populator().Populate(store, level, rng)
	if err != nil {
		return builtWorld{}, errors.Wrap(err, "populate level")
	}
	return builtWorld{store: store, level: level, player: player, pop: pop}, nil
}
