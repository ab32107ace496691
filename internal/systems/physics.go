package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/domain"
)

// HasLineOfSight проверяет прямую видимость между двумя точками алгоритмом
// Брезенхэма (только целочисленная арифметика). Концы отрезка не проверяются.
func HasLineOfSight(grid *domain.Grid, p1, p2 domain.Point, log logrus.FieldLogger) bool {
	if p1 == p2 {
		return true
	}

	x0, y0 := p1.X, p1.Y
	dx, dy := abs(p2.X-x0), abs(p2.Y-y0)
	sx, sy := sign(p2.X-x0), sign(p2.Y-y0)
	err := dx - dy

	for {
		if (x0 != p1.X || y0 != p1.Y) && (x0 != p2.X || y0 != p2.Y) {
			if !grid.IsTransparent(x0, y0) {
				if log != nil {
					log.WithFields(logrus.Fields{
						"component": "physics_system",
						"from":      p1,
						"to":        p2,
						"blocked":   domain.Point{X: x0, Y: y0},
					}).Debug("Line of sight blocked")
				}
				return false
			}
		}
		if x0 == p2.X && y0 == p2.Y {
			return true
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
