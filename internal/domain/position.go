package domain

import "github.com/yuru-sha/roguelike-sub000/internal/ecs"

// Point - координата на сетке.
type Point struct {
	X int
	Y int
}

func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Chebyshev - расстояние с диагональными шагами той же цены.
func (p Point) Chebyshev(o Point) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// DistanceSquared - квадрат евклидова расстояния, без корня.
func (p Point) DistanceSquared(o Point) int {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx + dy*dy
}

// IsAdjacent - соседние клетки по 8 направлениям (сама клетка не соседняя).
func (p Point) IsAdjacent(o Point) bool {
	return p != o && p.Chebyshev(o) <= 1
}

// Directions8 - фиксированный порядок обхода соседей: S, E, N, W, SE, NW, SW, NE.
// От него зависят разрешения ничьих в ИИ, менять нельзя.
var Directions8 = [8]Point{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 1},
	{X: -1, Y: -1},
	{X: -1, Y: 1},
	{X: 1, Y: -1},
}

// Position - компонент положения на карте. Отсутствие компонента значит,
// что сущность вне карты (например, лежит в инвентаре).
type Position struct {
	X int
	Y int
}

func (*Position) Kind() ecs.Kind { return KindPosition }

func (p *Position) Point() Point {
	return Point{X: p.X, Y: p.Y}
}

func (p *Position) MoveTo(pt Point) {
	p.X, p.Y = pt.X, pt.Y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
