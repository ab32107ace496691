package dungeon

import (
	"math/rand"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// Сколько раз генерация повторяется, если не принята ни одна комната,
// прежде чем уровень будет собран из одной гарантированной комнаты.
const GenerationRetries = 3

// Config - параметры глубины подземелья.
type Config struct {
	Width       int
	Height      int
	RoomMinSize int
	RoomMaxSize int
	MaxRooms    int

	// Sparse - сетка начинается без клеток; стены появляются только
	// вокруг комнат и коридоров, остальное остаётся отсутствующим.
	Sparse bool
	// Reinforce - обкладывать коридоры стенами там, где клетка не открыта.
	Reinforce bool
}

// DefaultConfig - размеры классической карты 80x43.
func DefaultConfig() Config {
	return Config{
		Width:       domain.DefaultMapWidth,
		Height:      domain.DefaultMapHeight,
		RoomMinSize: domain.DefaultRoomMin,
		RoomMaxSize: domain.DefaultRoomMax,
		MaxRooms:    domain.DefaultMaxRooms,
		Reinforce:   true,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 2 || c.Height <= 2:
		return errors.InvalidArgumentf("map %dx%d is too small", c.Width, c.Height)
	case c.RoomMinSize < 3:
		return errors.InvalidArgumentf("room min size %d < 3", c.RoomMinSize)
	case c.RoomMinSize > c.RoomMaxSize:
		return errors.InvalidArgumentf("room min size %d > max size %d", c.RoomMinSize, c.RoomMaxSize)
	case c.RoomMaxSize >= c.Width || c.RoomMaxSize >= c.Height:
		return errors.InvalidArgumentf("room max size %d does not fit %dx%d", c.RoomMaxSize, c.Width, c.Height)
	case c.MaxRooms < 0:
		return errors.InvalidArgumentf("max rooms %d < 0", c.MaxRooms)
	}
	return nil
}

// Rect - комната. Углы (X1,Y1)-(X2,Y2) включительно принадлежат стене-рамке.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) X1() int { return r.X }
func (r Rect) Y1() int { return r.Y }
func (r Rect) X2() int { return r.X + r.W }
func (r Rect) Y2() int { return r.Y + r.H }

func (r Rect) Center() domain.Point {
	return domain.Point{X: (r.X1() + r.X2()) / 2, Y: (r.Y1() + r.Y2()) / 2}
}

// Intersects - пересечение с касанием: соседние комнаты не делят стену.
func (r Rect) Intersects(other Rect) bool {
	return r.X1() <= other.X2() && r.X2() >= other.X1() &&
		r.Y1() <= other.Y2() && r.Y2() >= other.Y1()
}

// ContainsInterior - точка внутри комнаты, не на рамке.
func (r Rect) ContainsInterior(p domain.Point) bool {
	return p.X > r.X1() && p.X < r.X2() && p.Y > r.Y1() && p.Y < r.Y2()
}

// Level - результат генерации.
type Level struct {
	Depth      int
	Grid       *domain.Grid
	Rooms      []Rect
	Start      domain.Point
	StairsDown domain.Point
	// HasStairsUp - на первом уровне подниматься некуда.
	HasStairsUp bool
	StairsUp    domain.Point
}

// Generate строит уровень заданной глубины.
func Generate(cfg Config, depth int, rng *rand.Rand) (*Level, error) {
	return NewLevel(depth, rng).WithConfig(cfg).Build()
}

// --- Вспомогательные функции ---

func carveRoom(g *domain.Grid, room Rect, sparse bool) {
	if sparse {
		for y := room.Y1(); y <= room.Y2(); y++ {
			for x := room.X1(); x <= room.X2(); x++ {
				wallIfClosed(g, x, y)
			}
		}
	}
	for y := room.Y1() + 1; y < room.Y2(); y++ {
		for x := room.X1() + 1; x < room.X2(); x++ {
			_ = g.SetKind(x, y, enums.TileFloor)
		}
	}
}

func carveHCorridor(g *domain.Grid, x1, x2, y int) []domain.Point {
	var cells []domain.Point
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		_ = g.SetKind(x, y, enums.TileFloor)
		cells = append(cells, domain.Point{X: x, Y: y})
	}
	return cells
}

func carveVCorridor(g *domain.Grid, y1, y2, x int) []domain.Point {
	var cells []domain.Point
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		_ = g.SetKind(x, y, enums.TileFloor)
		cells = append(cells, domain.Point{X: x, Y: y})
	}
	return cells
}

// reinforce обкладывает клетки коридора стенами, не трогая открытые клетки.
func reinforce(g *domain.Grid, cells []domain.Point) {
	for _, c := range cells {
		for _, d := range domain.Directions8 {
			n := c.Add(d)
			wallIfClosed(g, n.X, n.Y)
		}
	}
}

func wallIfClosed(g *domain.Grid, x, y int) {
	if !g.InBounds(x, y) || g.IsWalkable(x, y) {
		return
	}
	_ = g.SetKind(x, y, enums.TileWall)
}

func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return rng.Intn(hi-lo+1) + lo
}
