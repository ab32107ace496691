package systems

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/yuru-sha/roguelike-sub000/internal/domain"
)

// Симметричный shadowcasting по четырём квадрантам (север, восток, юг, запад).
// Каждый квадрант сканируется построчно от наблюдателя; строка — это клетки
// на одинаковом удалении по главной оси. Наклоны хранятся дробями, чтобы
// округление на границах не зависело от float.
//
// Пол виден, только если его центр внутри сектора, а стена видна, если
// сектор задевает любую её часть. Поэтому A видит B тогда и только тогда,
// когда B видит A.

// quadrant переводит (глубина, столбец) в координаты сетки.
type quadrant struct {
	origin domain.Point
	dir    int // 0 север, 1 восток, 2 юг, 3 запад
}

func (q quadrant) transform(depth, col int) domain.Point {
	switch q.dir {
	case 0:
		return domain.Point{X: q.origin.X + col, Y: q.origin.Y - depth}
	case 1:
		return domain.Point{X: q.origin.X + depth, Y: q.origin.Y + col}
	case 2:
		return domain.Point{X: q.origin.X + col, Y: q.origin.Y + depth}
	default:
		return domain.Point{X: q.origin.X - depth, Y: q.origin.Y + col}
	}
}

// slope - наклон num/den, den > 0.
type slope struct {
	num int
	den int
}

// tileSlope - наклон левого края клетки.
func tileSlope(depth, col int) slope {
	return slope{num: 2*col - 1, den: 2 * depth}
}

type scanRow struct {
	depth int
	start slope
	end   slope
}

// minCol - round_ties_up(depth * start).
func (r scanRow) minCol() int {
	return floorDiv(2*r.depth*r.start.num+r.start.den, 2*r.start.den)
}

// maxCol - round_ties_down(depth * end).
func (r scanRow) maxCol() int {
	return -floorDiv(-(2*r.depth*r.end.num - r.end.den), 2*r.end.den)
}

// symmetric - центр клетки внутри сектора строки.
func (r scanRow) symmetric(col int) bool {
	return col*r.start.den >= r.depth*r.start.num &&
		col*r.end.den <= r.depth*r.end.num
}

func (r scanRow) next() scanRow {
	return scanRow{depth: r.depth + 1, start: r.start, end: r.end}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

type fovScan struct {
	grid     *domain.Grid
	quad     quadrant
	radius   int
	radiusSq int
	visible  *mapset.Set[domain.Point]
}

// opaque - вне сетки и отсутствующие клетки непрозрачны.
func (s *fovScan) opaque(p domain.Point) bool {
	return !s.grid.IsTransparent(p.X, p.Y)
}

func (s *fovScan) reveal(p domain.Point) {
	if _, ok := s.grid.Get(p.X, p.Y); !ok {
		return
	}
	if p.DistanceSquared(s.quad.origin) > s.radiusSq {
		return
	}
	s.visible.Put(p)
}

func (s *fovScan) scan(r scanRow) {
	if r.depth > s.radius {
		return
	}
	prevWall, hasPrev := false, false
	for col := r.minCol(); col <= r.maxCol(); col++ {
		p := s.quad.transform(r.depth, col)
		wall := s.opaque(p)
		if wall || r.symmetric(col) {
			s.reveal(p)
		}
		if hasPrev && prevWall && !wall {
			r.start = tileSlope(r.depth, col)
		}
		if hasPrev && !prevWall && wall {
			nr := r.next()
			nr.end = tileSlope(r.depth, col)
			s.scan(nr)
		}
		prevWall, hasPrev = wall, true
	}
	if hasPrev && !prevWall {
		s.scan(r.next())
	}
}

// ComputeFOV возвращает множество видимых клеток и помечает их исследованными.
// Наблюдатель всегда видит свою клетку. radius <= 0 — без ограничения дальности.
func ComputeFOV(grid *domain.Grid, origin domain.Point, radius int, log logrus.FieldLogger) *mapset.Set[domain.Point] {
	visible := mapset.New[domain.Point]()
	if !grid.InBounds(origin.X, origin.Y) {
		return &visible
	}
	if radius <= 0 {
		// Круг радиуса w+h накрывает всю сетку из любой точки.
		radius = grid.Width() + grid.Height()
	}

	if _, ok := grid.Get(origin.X, origin.Y); ok {
		visible.Put(origin)
	}
	for dir := range 4 {
		s := &fovScan{
			grid:     grid,
			quad:     quadrant{origin: origin, dir: dir},
			radius:   radius,
			radiusSq: radius * radius,
			visible:  &visible,
		}
		s.scan(scanRow{depth: 1, start: slope{num: -1, den: 1}, end: slope{num: 1, den: 1}})
	}

	explored := 0
	visible.Each(func(p domain.Point) {
		if grid.MarkExplored(p.X, p.Y) {
			explored++
		}
	})

	if log != nil {
		log.WithFields(logrus.Fields{
			"component":    "fov_system",
			"origin":       origin,
			"radius":       radius,
			"visible":      visible.Size(),
			"new_explored": explored,
		}).Debug("FOV computed")
	}
	return &visible
}

// Visibility хранит последний расчёт поля зрения и пересчитывает его,
// только когда наблюдатель сместился.
type Visibility struct {
	radius  int
	last    domain.Point
	valid   bool
	visible *mapset.Set[domain.Point]
}

func NewVisibility(radius int) *Visibility {
	empty := mapset.New[domain.Point]()
	return &Visibility{radius: radius, visible: &empty}
}

// Update пересчитывает поле зрения при смене позиции. Возвращает true, если был пересчёт.
func (v *Visibility) Update(grid *domain.Grid, origin domain.Point, log logrus.FieldLogger) bool {
	if v.valid && v.last == origin {
		return false
	}
	v.visible = ComputeFOV(grid, origin, v.radius, log)
	v.last = origin
	v.valid = true
	return true
}

// Invalidate заставляет следующий Update пересчитать поле (смена уровня, загрузка).
func (v *Visibility) Invalidate() {
	v.valid = false
}

func (v *Visibility) Visible() *mapset.Set[domain.Point] {
	return v.visible
}

func (v *Visibility) IsVisible(p domain.Point) bool {
	return v.visible.Has(p)
}

func (v *Visibility) Radius() int {
	return v.radius
}
