package dungeon

import (
	"math/rand"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// LevelBuilder предоставляет fluent API для создания уровней.
type LevelBuilder struct {
	depth int
	cfg   Config
	grid  *domain.Grid
	rooms []Rect
	rng   *rand.Rand
}

// NewLevel создает builder для уровня глубины depth с настройками по умолчанию.
func NewLevel(depth int, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		depth: max(depth, 1),
		cfg:   DefaultConfig(),
		rng:   rng,
	}
}

func (b *LevelBuilder) WithConfig(cfg Config) *LevelBuilder {
	b.cfg = cfg
	return b
}

// WithSize устанавливает размер карты.
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.cfg.Width = width
	b.cfg.Height = height
	return b
}

func (b *LevelBuilder) WithRoomSize(minSize, maxSize int) *LevelBuilder {
	b.cfg.RoomMinSize = minSize
	b.cfg.RoomMaxSize = maxSize
	return b
}

func (b *LevelBuilder) WithMaxRooms(n int) *LevelBuilder {
	b.cfg.MaxRooms = n
	return b
}

// Sparse - сетка с отсутствующими клетками вне комнат и коридоров.
func (b *LevelBuilder) Sparse() *LevelBuilder {
	b.cfg.Sparse = true
	return b
}

// Build генерирует комнаты, коридоры и лестницы.
func (b *LevelBuilder) Build() (*Level, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < GenerationRetries && len(b.rooms) == 0; attempt++ {
		b.placeRooms()
	}
	if len(b.rooms) == 0 {
		if err := b.placeFallbackRoom(); err != nil {
			return nil, err
		}
	}

	level := &Level{
		Depth: b.depth,
		Grid:  b.grid,
		Rooms: b.rooms,
		Start: b.rooms[0].Center(),
	}
	b.placeStairs(level)
	return level, nil
}

func (b *LevelBuilder) resetGrid() {
	if b.cfg.Sparse {
		b.grid = domain.NewEmptyGrid(b.cfg.Width, b.cfg.Height)
	} else {
		b.grid = domain.NewGrid(b.cfg.Width, b.cfg.Height)
	}
	b.rooms = b.rooms[:0]
}

func (b *LevelBuilder) placeRooms() {
	b.resetGrid()

	for i := 0; i < b.cfg.MaxRooms; i++ {
		w := randRange(b.rng, b.cfg.RoomMinSize, b.cfg.RoomMaxSize)
		h := randRange(b.rng, b.cfg.RoomMinSize, b.cfg.RoomMaxSize)
		x := randRange(b.rng, 0, b.cfg.Width-w-1)
		y := randRange(b.rng, 0, b.cfg.Height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}

		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		carveRoom(b.grid, newRoom, b.cfg.Sparse)
		if len(b.rooms) > 0 {
			b.connect(b.rooms[len(b.rooms)-1], newRoom)
		}
		b.rooms = append(b.rooms, newRoom)
	}
}

// connect прокладывает L-образный коридор между центрами комнат.
func (b *LevelBuilder) connect(prev, curr Rect) {
	p, c := prev.Center(), curr.Center()

	var cells []domain.Point
	if b.rng.Intn(2) == 0 {
		cells = append(cells, carveHCorridor(b.grid, p.X, c.X, p.Y)...)
		cells = append(cells, carveVCorridor(b.grid, p.Y, c.Y, c.X)...)
	} else {
		cells = append(cells, carveVCorridor(b.grid, p.Y, c.Y, p.X)...)
		cells = append(cells, carveHCorridor(b.grid, p.X, c.X, c.Y)...)
	}
	if b.cfg.Reinforce || b.cfg.Sparse {
		reinforce(b.grid, cells)
	}
}

// placeFallbackRoom - одна комната по центру карты, когда случай не дал ни одной.
func (b *LevelBuilder) placeFallbackRoom() error {
	b.resetGrid()

	w := min(b.cfg.RoomMinSize, b.cfg.Width-1)
	h := min(b.cfg.RoomMinSize, b.cfg.Height-1)
	if w < 2 || h < 2 {
		return errors.Newf(errors.CodeGenerationFailure, "no room fits %dx%d", b.cfg.Width, b.cfg.Height)
	}
	room := Rect{X: (b.cfg.Width - w - 1) / 2, Y: (b.cfg.Height - h - 1) / 2, W: w, H: h}
	carveRoom(b.grid, room, b.cfg.Sparse)
	b.rooms = append(b.rooms, room)
	return nil
}

// placeStairs: вниз — центр последней комнаты, вверх — старт игрока (кроме первого уровня).
func (b *LevelBuilder) placeStairs(level *Level) {
	last := b.rooms[len(b.rooms)-1]
	down := last.Center()
	if down == level.Start {
		// Единственная комната: уводим лестницу в угол интерьера.
		down = domain.Point{X: last.X2() - 1, Y: last.Y2() - 1}
	}
	level.StairsDown = down
	_ = b.grid.SetKind(down.X, down.Y, enums.TileStairsDown)

	if b.depth > 1 {
		level.HasStairsUp = true
		level.StairsUp = level.Start
		_ = b.grid.SetKind(level.Start.X, level.Start.Y, enums.TileStairsUp)
	}
}
