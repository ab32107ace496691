package domain

import (
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// Tile - одна клетка уровня.
// Walkable и Transparent всегда выводятся из Kind: стена непроходима и
// непрозрачна, всё остальное проходимо и прозрачно.
type Tile struct {
	Kind        enums.TileKind
	Walkable    bool
	Transparent bool
	Explored    bool
}

// NewTile создаёт клетку с согласованными флагами.
func NewTile(kind enums.TileKind) Tile {
	open := kind != enums.TileWall
	return Tile{Kind: kind, Walkable: open, Transparent: open}
}

func (t Tile) normalized() Tile {
	open := t.Kind != enums.TileWall
	t.Walkable = open
	t.Transparent = open
	return t
}

// Grid - прямоугольная сетка клеток фиксированного размера.
// Ячейка может отсутствовать (nil): такая клетка не существует для всех систем
// и сохраняется как null.
type Grid struct {
	width  int
	height int
	cells  []*Tile
}

// NewGrid создаёт сетку, целиком заполненную стенами.
func NewGrid(width, height int) *Grid {
	g := NewEmptyGrid(width, height)
	g.Fill(enums.TileWall)
	return g
}

// NewEmptyGrid создаёт сетку без единой клетки.
func NewEmptyGrid(width, height int) *Grid {
	width = max(width, 0)
	height = max(height, 0)
	return &Grid{width: width, height: height, cells: make([]*Tile, width*height)}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// Get возвращает копию клетки; false — вне сетки или клетка отсутствует.
func (g *Grid) Get(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return Tile{}, false
	}
	t := g.cells[g.index(x, y)]
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// Set записывает клетку. Флаги проходимости пересчитываются из Kind.
func (g *Grid) Set(x, y int, t Tile) error {
	if !g.InBounds(x, y) {
		return errors.OutOfBoundsf("tile (%d,%d) outside %dx%d", x, y, g.width, g.height)
	}
	n := t.normalized()
	g.cells[g.index(x, y)] = &n
	return nil
}

// SetKind меняет тип клетки, сохраняя флаг исследованности.
func (g *Grid) SetKind(x, y int, kind enums.TileKind) error {
	t, ok := g.Get(x, y)
	if !ok {
		t = Tile{}
	}
	t.Kind = kind
	return g.Set(x, y, t)
}

// Clear делает клетку отсутствующей.
func (g *Grid) Clear(x, y int) error {
	if !g.InBounds(x, y) {
		return errors.OutOfBoundsf("tile (%d,%d) outside %dx%d", x, y, g.width, g.height)
	}
	g.cells[g.index(x, y)] = nil
	return nil
}

// Fill перезаписывает все клетки, сбрасывая исследованность.
func (g *Grid) Fill(kind enums.TileKind) {
	for i := range g.cells {
		t := NewTile(kind)
		g.cells[i] = &t
	}
}

func (g *Grid) IsWalkable(x, y int) bool {
	t, ok := g.Get(x, y)
	return ok && t.Walkable
}

func (g *Grid) IsTransparent(x, y int) bool {
	t, ok := g.Get(x, y)
	return ok && t.Transparent
}

func (g *Grid) IsExplored(x, y int) bool {
	t, ok := g.Get(x, y)
	return ok && t.Explored
}

// MarkExplored выставляет флаг; снять его нельзя. Возвращает true, если флаг изменился.
func (g *Grid) MarkExplored(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	t := g.cells[g.index(x, y)]
	if t == nil || t.Explored {
		return false
	}
	t.Explored = true
	return true
}

// KindAt - тип клетки, false вне сетки.
func (g *Grid) KindAt(x, y int) (enums.TileKind, bool) {
	t, ok := g.Get(x, y)
	return t.Kind, ok
}
