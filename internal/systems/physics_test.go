package systems

import (
	"testing"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
)

func TestHasLineOfSight(t *testing.T) {
	g := openGrid(10, 10)
	_ = g.SetKind(5, 5, enums.TileWall)

	tests := []struct {
		name     string
		p1, p2   domain.Point
		expected bool
	}{
		{"same point", domain.Point{X: 1, Y: 1}, domain.Point{X: 1, Y: 1}, true},
		{"clear horizontal", domain.Point{X: 1, Y: 1}, domain.Point{X: 8, Y: 1}, true},
		{"blocked straight", domain.Point{X: 5, Y: 2}, domain.Point{X: 5, Y: 8}, false},
		{"blocked diagonal", domain.Point{X: 3, Y: 3}, domain.Point{X: 7, Y: 7}, false},
		{"target is wall", domain.Point{X: 5, Y: 2}, domain.Point{X: 5, Y: 5}, true},
		{"around wall", domain.Point{X: 4, Y: 2}, domain.Point{X: 4, Y: 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLineOfSight(g, tt.p1, tt.p2, testLog); got != tt.expected {
				t.Errorf("HasLineOfSight(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.expected)
			}
		})
	}
}

func TestFightersInRadiusBehindWall(t *testing.T) {
	w := newTestWorld(t, 12, 7)
	for y := 1; y < 6; y++ {
		_ = w.Grid.SetKind(6, y, enums.TileWall)
	}
	near := addMonster(t, w, dungeon.Orc, domain.Point{X: 4, Y: 3})
	addMonster(t, w, dungeon.Orc, domain.Point{X: 7, Y: 3})

	got := FightersInRadius(w, domain.Point{X: 5, Y: 3}, 3)
	if len(got) != 1 || got[0] != near {
		t.Errorf("FightersInRadius = %v, want only %s", got, near)
	}
}

func TestCostField(t *testing.T) {
	g := openGrid(10, 5)
	_ = g.SetKind(5, 1, enums.TileWall)
	_ = g.SetKind(5, 2, enums.TileWall)

	field, err := BuildCostField(g, domain.Point{X: 2, Y: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if c, ok := field.At(domain.Point{X: 2, Y: 2}); !ok || c != 0 {
		t.Errorf("goal cost = %d, %v", c, ok)
	}
	if c, _ := field.At(domain.Point{X: 4, Y: 2}); c != 2 {
		t.Errorf("open cost = %d, want 2", c)
	}
	// Обход стены снизу через (5,3).
	if c, _ := field.At(domain.Point{X: 6, Y: 2}); c != 4 {
		t.Errorf("detour cost = %d, want 4", c)
	}
	if _, ok := field.At(domain.Point{X: 5, Y: 1}); ok {
		t.Error("walls are unreachable")
	}
}

func TestCostField_OccupiedPenalty(t *testing.T) {
	g := openGrid(10, 3) // коридор y=1
	occupied := map[domain.Point]bool{{X: 4, Y: 1}: true}

	field, err := BuildCostField(g, domain.Point{X: 1, Y: 1}, func(p domain.Point) bool { return occupied[p] })
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := field.At(domain.Point{X: 5, Y: 1}); c != 4+OccupiedPenalty {
		t.Errorf("cost behind the crowd = %d, want %d", c, 4+OccupiedPenalty)
	}
}

func TestCostField_NoPath(t *testing.T) {
	g := openGrid(10, 3)
	_ = g.SetKind(5, 1, enums.TileWall)

	field, err := BuildCostField(g, domain.Point{X: 1, Y: 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = field.Toward(domain.Point{X: 7, Y: 1}, func(domain.Point) bool { return true })
	if err == nil {
		t.Fatal("expected pathfinding failure")
	}
}

func TestCostField_GoalOutOfBounds(t *testing.T) {
	if _, err := BuildCostField(openGrid(4, 4), domain.Point{X: 9, Y: 9}, nil); err == nil {
		t.Fatal("expected out of bounds error")
	}
}
