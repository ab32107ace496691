package systems

import (
	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// MoveResult - результат шага. Шаг в занятую бойцом клетку становится атакой.
type MoveResult struct {
	From     domain.Point
	To       domain.Point
	Moved    bool
	Attacked bool
	Target   types.EntityID
	Attack   AttackResult
}

// CheckMove проверяет шаг, ничего не меняя.
func CheckMove(w *World, actor types.EntityID, dx, dy int) (MoveResult, error) {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
		return MoveResult{}, errors.InvalidArgumentf("step (%d,%d) is not a single-tile move", dx, dy)
	}
	pos, err := ecs.Require[*domain.Position](w.Store, actor)
	if err != nil {
		return MoveResult{}, err
	}

	from := pos.Point()
	to := from.Add(domain.Point{X: dx, Y: dy})
	res := MoveResult{From: from, To: to}

	if !w.Grid.InBounds(to.X, to.Y) {
		return res, errors.OutOfBoundsf("step to (%d,%d) leaves the map", to.X, to.Y)
	}
	if target, ok := w.BlockerAt(to); ok && target != actor {
		res.Attacked = true
		res.Target = target
		return res, nil
	}
	if !w.Grid.IsWalkable(to.X, to.Y) {
		return res, errors.FailedPreconditionf("tile (%d,%d) is blocked", to.X, to.Y)
	}
	res.Moved = true
	return res, nil
}

// MoveOrAttack - шаг игрока или монстра: в свободную клетку идёт, в бойца бьёт.
// Отклонённый шаг ничего не меняет.
func MoveOrAttack(w *World, actor types.EntityID, dx, dy int) (MoveResult, error) {
	res, err := CheckMove(w, actor, dx, dy)
	if err != nil {
		return res, err
	}
	if res.Attacked {
		ar, err := Attack(w, actor, res.Target)
		res.Attack = ar
		return res, err
	}

	pos, _ := ecs.Get[*domain.Position](w.Store, actor)
	pos.MoveTo(res.To)
	return res, nil
}

// Teleport переносит сущность в случайную свободную клетку пола.
func Teleport(w *World, id types.EntityID) (domain.Point, error) {
	pos, err := ecs.Require[*domain.Position](w.Store, id)
	if err != nil {
		return domain.Point{}, err
	}

	var free []domain.Point
	for y := range w.Grid.Height() {
		for x := range w.Grid.Width() {
			p := domain.Point{X: x, Y: y}
			if p != pos.Point() && w.CanEnter(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return pos.Point(), errors.FailedPrecondition("no free tile to teleport to")
	}
	dst := free[w.Rng.Intn(len(free))]
	pos.MoveTo(dst)
	return dst, nil
}

// TeleportTo переносит сущность в заданную свободную клетку.
func TeleportTo(w *World, id types.EntityID, dst domain.Point) error {
	pos, err := ecs.Require[*domain.Position](w.Store, id)
	if err != nil {
		return err
	}
	if !w.Grid.InBounds(dst.X, dst.Y) {
		return errors.OutOfBoundsf("tile (%d,%d) outside the map", dst.X, dst.Y)
	}
	if dst != pos.Point() && !w.CanEnter(dst) {
		return errors.FailedPreconditionf("tile (%d,%d) is blocked", dst.X, dst.Y)
	}
	pos.MoveTo(dst)
	return nil
}

// FreeNeighbor - первая свободная соседняя клетка в порядке domain.Directions8.
func FreeNeighbor(w *World, at domain.Point) (domain.Point, bool) {
	for _, d := range domain.Directions8 {
		if p := at.Add(d); w.CanEnter(p) {
			return p, true
		}
	}
	return at, false
}
