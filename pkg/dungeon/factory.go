package dungeon

import (
	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
)

// CreatePlayer создаёт героя на позиции at.
func CreatePlayer(store *ecs.Store, at domain.Point) (types.EntityID, error) {
	id := store.CreateEntity()
	err := attach(store, id,
		&domain.Position{X: at.X, Y: at.Y},
		&domain.Renderable{Glyph: domain.GlyphPlayer, Order: enums.RenderActor},
		&domain.Name{Value: "Герой"},
		&domain.Fighter{
			HP:      domain.PlayerHP,
			MaxHP:   domain.PlayerHP,
			Defense: domain.PlayerDefense,
			Power:   domain.PlayerPower,
		},
		&domain.Inventory{Capacity: domain.PlayerInventoryCapacity},
		domain.NewLevel(domain.PlayerBaseXPToNext),
		domain.NewEquipmentSlots(),
	)
	return id, err
}

// SpawnMonster создаёт монстра из шаблона. Монстры сразу враждебны.
func SpawnMonster(store *ecs.Store, t MonsterTemplate, at domain.Point) (types.EntityID, error) {
	id := store.CreateEntity()
	err := attach(store, id,
		&domain.Position{X: at.X, Y: at.Y},
		&domain.Renderable{Glyph: t.Glyph, Order: enums.RenderActor},
		&domain.Name{Value: t.Name},
		&domain.Fighter{HP: t.HP, MaxHP: t.HP, Defense: t.Defense, Power: t.Power, XP: t.XP},
		&domain.AI{State: enums.AIStateHostile},
	)
	return id, err
}

// SpawnItem создаёт предмет. at == nil — предмет вне карты (сразу в инвентарь).
func SpawnItem(store *ecs.Store, t ItemTemplate, at *domain.Point) (types.EntityID, error) {
	id := store.CreateEntity()
	comps := []ecs.Component{
		&domain.Renderable{Glyph: t.Glyph, Order: enums.RenderItem},
		&domain.Name{Value: t.Name},
		&domain.Item{Effect: t.Effect},
	}
	if at != nil {
		comps = append(comps, &domain.Position{X: at.X, Y: at.Y})
	}
	if t.Equipment != nil {
		eq := *t.Equipment
		comps = append(comps, &eq)
	}
	return id, attach(store, id, comps...)
}

// attach навешивает компоненты целиком или удаляет сущность: полусобранных сущностей не бывает.
func attach(store *ecs.Store, id types.EntityID, comps ...ecs.Component) error {
	for _, c := range comps {
		if err := store.Add(id, c); err != nil {
			store.DeleteEntity(id)
			return err
		}
	}
	return nil
}
