package systems

import (
	"container/heap"
	"math"

	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

const (
	// Unreachable - стоимость клетки, до которой от цели не дойти.
	Unreachable = math.MaxInt32
	// OccupiedPenalty - надбавка за клетку, занятую другим бойцом.
	// Путь через толпу возможен, но обход дешевле.
	OccupiedPenalty = 10
)

// CostField - карта расстояний до цели (алгоритм Дейкстры, 8 направлений,
// шаг стоит 1). Стены и отсутствующие клетки непроходимы.
type CostField struct {
	width  int
	height int
	goal   domain.Point
	cost   []int
}

// BuildCostField строит поле от goal. occupied может быть nil.
func BuildCostField(grid *domain.Grid, goal domain.Point, occupied func(domain.Point) bool) (*CostField, error) {
	if !grid.InBounds(goal.X, goal.Y) {
		return nil, errors.OutOfBoundsf("cost field goal (%d,%d) outside grid", goal.X, goal.Y)
	}

	f := &CostField{
		width:  grid.Width(),
		height: grid.Height(),
		goal:   goal,
		cost:   make([]int, grid.Width()*grid.Height()),
	}
	for i := range f.cost {
		f.cost[i] = Unreachable
	}

	pq := make(frontier, 0, 64)
	heap.Init(&pq)
	f.cost[f.index(goal)] = 0
	heap.Push(&pq, &frontierItem{Point: goal, Priority: 0})

	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(*frontierItem)
		if cur.Priority > f.cost[f.index(cur.Point)] {
			continue // устаревшая запись
		}
		for _, d := range domain.Directions8 {
			next := cur.Point.Add(d)
			if !grid.IsWalkable(next.X, next.Y) {
				continue
			}
			step := 1
			if occupied != nil && occupied(next) {
				step += OccupiedPenalty
			}
			nc := cur.Priority + step
			if nc < f.cost[f.index(next)] {
				f.cost[f.index(next)] = nc
				heap.Push(&pq, &frontierItem{Point: next, Priority: nc})
			}
		}
	}
	return f, nil
}

func (f *CostField) index(p domain.Point) int {
	return p.Y*f.width + p.X
}

func (f *CostField) Goal() domain.Point { return f.goal }

// At - стоимость клетки; false вне поля или для недостижимой клетки.
func (f *CostField) At(p domain.Point) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= f.width || p.Y >= f.height {
		return Unreachable, false
	}
	c := f.cost[f.index(p)]
	return c, c != Unreachable
}

// Toward выбирает соседнюю клетку с наименьшей стоимостью среди тех, куда
// можно шагнуть. Ничьи решает порядок domain.Directions8.
// PATHFINDING_FAILURE - ни один свободный сосед не связан с целью.
func (f *CostField) Toward(from domain.Point, canEnter func(domain.Point) bool) (domain.Point, error) {
	return f.pick(from, canEnter, func(c, best int) bool { return c < best }, Unreachable)
}

// Away - наоборот, сосед с наибольшей конечной стоимостью (бегство).
func (f *CostField) Away(from domain.Point, canEnter func(domain.Point) bool) (domain.Point, error) {
	return f.pick(from, canEnter, func(c, best int) bool { return c > best }, -1)
}

func (f *CostField) pick(from domain.Point, canEnter func(domain.Point) bool, better func(c, best int) bool, initial int) (domain.Point, error) {
	best, found := initial, false
	var step domain.Point
	for _, d := range domain.Directions8 {
		next := from.Add(d)
		c, ok := f.At(next)
		if !ok || !canEnter(next) {
			continue
		}
		if better(c, best) {
			best, step, found = c, next, true
		}
	}
	if !found {
		return from, errors.Newf(errors.CodePathfindingFailure, "no step from (%d,%d) towards (%d,%d)",
			from.X, from.Y, f.goal.X, f.goal.Y)
	}
	return step, nil
}

// --- очередь с приоритетом ---

type frontierItem struct {
	Point    domain.Point
	Priority int // накопленная стоимость; меньше — раньше
	Index    int
}

// frontier реализует heap.Interface.
type frontier []*frontierItem

func (pq frontier) Len() int { return len(pq) }

func (pq frontier) Less(i, j int) bool {
	return pq[i].Priority < pq[j].Priority
}

func (pq frontier) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.Index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *frontier) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[:n-1]
	return item
}
