package engine

import (
	"slices"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
)

// Snapshot - то, что видит слой отрисовки. Все поля — копии: изменения
// снимка на мир не влияют.
type Snapshot struct {
	Turn     int
	Depth    int
	Width    int
	Height   int
	GameOver bool

	// Tiles - только исследованные клетки, построчно.
	Tiles []TileView
	// Entities - видимые сущности с Position и Renderable, в порядке отрисовки.
	Entities []EntityView
	Player   PlayerView
	Messages []domain.Message
}

type TileView struct {
	X, Y     int
	Kind     enums.TileKind
	Visible  bool
	Explored bool
}

type EntityView struct {
	ID    types.EntityID
	X, Y  int
	Glyph types.Glyph
	Order enums.RenderOrder
	Name  string

	IsPlayer  bool
	IsHostile bool
	IsItem    bool
	IsCorpse  bool
	// Fighter - копия характеристик бойца, nil у предметов.
	Fighter *domain.Fighter
}

type PlayerView struct {
	ID       types.EntityID
	X, Y     int
	Fighter  domain.Fighter
	Level    domain.Level
	Capacity int
	Items    []ItemView
	Equipped map[enums.EquipmentSlot]types.EntityID
}

type ItemView struct {
	ID         types.EntityID
	Name       string
	Glyph      types.Glyph
	Effect     domain.ItemEffect
	Identified bool
	Corpse     bool
	Equipment  *domain.Equipment
	Equipped   bool
}

// Snapshot собирает персональный "снимок" мира для игрока.
// Мир не меняется.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	snap := Snapshot{
		Turn:     w.Turn,
		Depth:    g.depth,
		Width:    w.Grid.Width(),
		Height:   w.Grid.Height(),
		GameOver: w.GameOver,
		Messages: w.Messages.All(),
	}

	// 1. Карта (туман войны): неисследованное не отдаём
	for y := range w.Grid.Height() {
		for x := range w.Grid.Width() {
			t, ok := w.Grid.Get(x, y)
			if !ok || !t.Explored {
				continue
			}
			snap.Tiles = append(snap.Tiles, TileView{
				X: x, Y: y,
				Kind:     t.Kind,
				Visible:  w.IsVisible(domain.Point{X: x, Y: y}),
				Explored: true,
			})
		}
	}

	// 2. Сущности в поле зрения
	for id, row := range ecs.Query2[*domain.Position, *domain.Renderable](w.Store) {
		if id != w.Player && !w.IsVisible(row.A.Point()) {
			continue
		}
		snap.Entities = append(snap.Entities, g.entityView(id, row.A, row.B))
	}
	// Стабильная сортировка сохраняет порядок создания внутри слоя.
	slices.SortStableFunc(snap.Entities, func(a, b EntityView) int {
		return int(a.Order) - int(b.Order)
	})

	snap.Player = g.playerView()
	return snap
}

func (g *Game) entityView(id types.EntityID, pos *domain.Position, r *domain.Renderable) EntityView {
	s := g.world.Store
	v := EntityView{
		ID: id, X: pos.X, Y: pos.Y,
		Glyph: r.Glyph, Order: r.Order,
		Name:      g.world.NameOf(id),
		IsPlayer:  id == g.world.Player,
		IsHostile: ecs.Has[*domain.AI](s, id),
		IsItem:    ecs.Has[*domain.Item](s, id),
		IsCorpse:  ecs.Has[*domain.Corpse](s, id),
	}
	if f, ok := ecs.Get[*domain.Fighter](s, id); ok {
		cp := *f
		v.Fighter = &cp
	}
	return v
}

func (g *Game) playerView() PlayerView {
	s := g.world.Store
	id := g.world.Player
	v := PlayerView{ID: id, Equipped: make(map[enums.EquipmentSlot]types.EntityID)}

	if pos, ok := ecs.Get[*domain.Position](s, id); ok {
		v.X, v.Y = pos.X, pos.Y
	}
	if f, ok := ecs.Get[*domain.Fighter](s, id); ok {
		v.Fighter = *f
	}
	if lvl, ok := ecs.Get[*domain.Level](s, id); ok {
		v.Level = *lvl
	}
	if slots, ok := ecs.Get[*domain.EquipmentSlots](s, id); ok {
		for slot, item := range slots.Slots {
			v.Equipped[slot] = item
		}
	}
	if inv, ok := ecs.Get[*domain.Inventory](s, id); ok {
		v.Capacity = inv.Capacity
		for _, item := range inv.Items {
			v.Items = append(v.Items, g.itemView(item, v.Equipped))
		}
	}
	return v
}

func (g *Game) itemView(id types.EntityID, equipped map[enums.EquipmentSlot]types.EntityID) ItemView {
	s := g.world.Store
	v := ItemView{ID: id, Name: g.world.NameOf(id)}
	if r, ok := ecs.Get[*domain.Renderable](s, id); ok {
		v.Glyph = r.Glyph
	}
	if it, ok := ecs.Get[*domain.Item](s, id); ok {
		v.Effect = it.Effect
		v.Identified = it.Identified
	}
	v.Corpse = ecs.Has[*domain.Corpse](s, id)
	if eq, ok := ecs.Get[*domain.Equipment](s, id); ok {
		cp := *eq
		v.Equipment = &cp
		v.Equipped = equipped[eq.Slot] == id
	}
	return v
}
