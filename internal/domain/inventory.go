package domain

import (
	"slices"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
)

// Inventory - рюкзак. Предметы в нём не имеют Position.
type Inventory struct {
	Capacity int
	Items    []types.EntityID
}

func (*Inventory) Kind() ecs.Kind { return KindInventory }

func (inv *Inventory) IsFull() bool {
	return len(inv.Items) >= inv.Capacity
}

func (inv *Inventory) Contains(id types.EntityID) bool {
	return slices.Contains(inv.Items, id)
}

// Add кладёт предмет; false, если места нет или предмет уже внутри.
func (inv *Inventory) Add(id types.EntityID) bool {
	if inv.IsFull() || inv.Contains(id) {
		return false
	}
	inv.Items = append(inv.Items, id)
	return true
}

func (inv *Inventory) Remove(id types.EntityID) bool {
	i := slices.Index(inv.Items, id)
	if i < 0 {
		return false
	}
	inv.Items = slices.Delete(inv.Items, i, i+1)
	return true
}

// Equipment - свойства надеваемого предмета.
type Equipment struct {
	Slot         enums.EquipmentSlot
	PowerBonus   int
	DefenseBonus int
	MaxHPBonus   int
	Cursed       bool
}

func (*Equipment) Kind() ecs.Kind { return KindEquipment }

// EquipmentSlots - что надето на носителе: слот -> id предмета.
type EquipmentSlots struct {
	Slots map[enums.EquipmentSlot]types.EntityID
}

func (*EquipmentSlots) Kind() ecs.Kind { return KindEquipmentSlots }

func NewEquipmentSlots() *EquipmentSlots {
	return &EquipmentSlots{Slots: make(map[enums.EquipmentSlot]types.EntityID)}
}

// InSlot - id предмета в слоте.
func (e *EquipmentSlots) InSlot(slot enums.EquipmentSlot) (types.EntityID, bool) {
	id, ok := e.Slots[slot]
	return id, ok && !id.IsNil()
}

// SlotOf ищет слот, в котором надет предмет.
func (e *EquipmentSlots) SlotOf(item types.EntityID) (enums.EquipmentSlot, bool) {
	for slot, id := range e.Slots {
		if id == item {
			return slot, true
		}
	}
	return enums.SlotNone, false
}

// Equipped возвращает id надетых предметов в порядке номеров слотов.
func (e *EquipmentSlots) Equipped() []types.EntityID {
	slots := make([]enums.EquipmentSlot, 0, len(e.Slots))
	for slot, id := range e.Slots {
		if !id.IsNil() {
			slots = append(slots, slot)
		}
	}
	slices.Sort(slots)
	out := make([]types.EntityID, 0, len(slots))
	for _, slot := range slots {
		out = append(out, e.Slots[slot])
	}
	return out
}
