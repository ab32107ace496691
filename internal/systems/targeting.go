package systems

import (
	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// NearestVisibleMonster - ближайший живой монстр в поле зрения игрока не
// дальше maxRange (евклидово расстояние). При равенстве — первый по порядку создания.
func NearestVisibleMonster(w *World, from domain.Point, maxRange int) (types.EntityID, bool) {
	best, bestDist := types.NilEntityID, maxRange*maxRange+1
	for id, row := range ecs.Query3[*domain.AI, *domain.Position, *domain.Fighter](w.Store) {
		if row.C.IsDead() {
			continue
		}
		p := row.B.Point()
		if !w.IsVisible(p) {
			continue
		}
		if d := p.DistanceSquared(from); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, !best.IsNil()
}

// FightersInRadius - живые бойцы в круге радиуса radius вокруг center,
// не закрытые от центра стенами.
func FightersInRadius(w *World, center domain.Point, radius int) []types.EntityID {
	var out []types.EntityID
	for id, row := range ecs.Query2[*domain.Position, *domain.Fighter](w.Store) {
		if row.B.IsDead() {
			continue
		}
		p := row.A.Point()
		if p.DistanceSquared(center) > radius*radius {
			continue
		}
		if HasLineOfSight(w.Grid, center, p, w.Log) {
			out = append(out, id)
		}
	}
	return out
}

// ValidateTargetTile - клетка должна быть видна игроку и не дальше maxRange от actor.
func ValidateTargetTile(w *World, actor types.EntityID, target domain.Point, maxRange int) error {
	pos, err := ecs.Require[*domain.Position](w.Store, actor)
	if err != nil {
		return err
	}
	if !w.Grid.InBounds(target.X, target.Y) {
		return errors.OutOfBoundsf("target (%d,%d) outside the map", target.X, target.Y)
	}
	if !w.IsVisible(target) {
		return errors.FailedPreconditionf("target (%d,%d) is not visible", target.X, target.Y)
	}
	if maxRange > 0 && pos.Point().DistanceSquared(target) > maxRange*maxRange {
		return errors.FailedPreconditionf("target (%d,%d) is out of range", target.X, target.Y)
	}
	return nil
}
