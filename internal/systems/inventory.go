package systems

import (
	"fmt"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// Все операции сначала проверяют условия и только потом меняют хранилище:
// отказ не оставляет рюкзак или экипировку в промежуточном состоянии.

// --- PICKUP ---

// ItemsAt - предметы, лежащие на клетке, в порядке создания.
func ItemsAt(w *World, p domain.Point) []types.EntityID {
	var out []types.EntityID
	for id, row := range ecs.Query2[*domain.Item, *domain.Position](w.Store) {
		if row.B.Point() == p {
			out = append(out, id)
		}
	}
	return out
}

// Pickup поднимает первый предмет под ногами.
func Pickup(w *World, actor types.EntityID) (types.EntityID, error) {
	pos, err := ecs.Require[*domain.Position](w.Store, actor)
	if err != nil {
		return types.NilEntityID, err
	}
	inv, err := ecs.Require[*domain.Inventory](w.Store, actor)
	if err != nil {
		return types.NilEntityID, err
	}

	items := ItemsAt(w, pos.Point())
	if len(items) == 0 {
		return types.NilEntityID, errors.FailedPrecondition("nothing to pick up here")
	}
	if inv.IsFull() {
		w.Warn("Рюкзак полон.")
		return types.NilEntityID, errors.FailedPreconditionf("inventory full (%d items)", inv.Capacity)
	}

	item := items[0]
	ecs.Remove[*domain.Position](w.Store, item)
	inv.Add(item)
	w.Say(domain.MessageInfo, fmt.Sprintf("%s подбирает: %s.", w.NameOf(actor), w.NameOf(item)))
	return item, nil
}

// --- DROP ---

// Drop кладёт предмет из рюкзака на клетку владельца. Надетый предмет сначала снимается.
func Drop(w *World, actor, item types.EntityID) error {
	pos, err := ecs.Require[*domain.Position](w.Store, actor)
	if err != nil {
		return err
	}
	inv, err := ecs.Require[*domain.Inventory](w.Store, actor)
	if err != nil {
		return err
	}
	if !inv.Contains(item) {
		return errors.NotFoundf("item %s is not in the inventory", item)
	}

	if slots, ok := ecs.Get[*domain.EquipmentSlots](w.Store, actor); ok {
		if slot, worn := slots.SlotOf(item); worn {
			if err := Unequip(w, actor, slot); err != nil {
				return err
			}
		}
	}

	at := pos.Point()
	if err := w.Store.Add(item, &domain.Position{X: at.X, Y: at.Y}); err != nil {
		return err
	}
	inv.Remove(item)
	w.Say(domain.MessageInfo, fmt.Sprintf("%s бросает: %s.", w.NameOf(actor), w.NameOf(item)))
	return nil
}

// --- EQUIP ---

// Equip надевает предмет из рюкзака в его слот, снимая то, что там было.
// Проклятый предмет в занятом слоте мешает замене.
func Equip(w *World, actor, item types.EntityID) error {
	inv, err := ecs.Require[*domain.Inventory](w.Store, actor)
	if err != nil {
		return err
	}
	slots, err := ecs.Require[*domain.EquipmentSlots](w.Store, actor)
	if err != nil {
		return err
	}
	eq, err := ecs.Require[*domain.Equipment](w.Store, item)
	if err != nil {
		return err
	}
	if !inv.Contains(item) {
		return errors.NotFoundf("item %s is not in the inventory", item)
	}
	if eq.Slot == enums.SlotNone {
		return errors.FailedPreconditionf("item %s has no equipment slot", item)
	}
	if _, worn := slots.SlotOf(item); worn {
		return errors.FailedPreconditionf("item %s is already equipped", item)
	}

	if current, ok := slots.InSlot(eq.Slot); ok {
		if err := Unequip(w, actor, eq.Slot); err != nil {
			w.Warn(fmt.Sprintf("%s не снимается!", w.NameOf(current)))
			return err
		}
	}

	slots.Slots[eq.Slot] = item
	if f, ok := ecs.Get[*domain.Fighter](w.Store, actor); ok && eq.MaxHPBonus != 0 {
		f.MaxHP += eq.MaxHPBonus
		f.HP = clampHP(f.HP, f.MaxHP)
	}
	if it, ok := ecs.Get[*domain.Item](w.Store, item); ok {
		it.Identified = true
	}

	w.Say(domain.MessageInfo, fmt.Sprintf("%s надевает: %s.", w.NameOf(actor), w.NameOf(item)))
	if eq.Cursed {
		w.Say(domain.MessageWarning, fmt.Sprintf("%s проклят!", w.NameOf(item)))
	}
	return nil
}

// Unequip снимает предмет из слота. Предмет остаётся в рюкзаке.
func Unequip(w *World, actor types.EntityID, slot enums.EquipmentSlot) error {
	slots, err := ecs.Require[*domain.EquipmentSlots](w.Store, actor)
	if err != nil {
		return err
	}
	item, ok := slots.InSlot(slot)
	if !ok {
		return errors.FailedPreconditionf("slot %s is empty", slot)
	}
	eq, ok := ecs.Get[*domain.Equipment](w.Store, item)
	if ok && eq.Cursed {
		return errors.FailedPreconditionf("item %s in slot %s is cursed", item, slot)
	}

	delete(slots.Slots, slot)
	if f, fok := ecs.Get[*domain.Fighter](w.Store, actor); fok && ok && eq.MaxHPBonus != 0 {
		f.MaxHP = max(f.MaxHP-eq.MaxHPBonus, 1)
		f.HP = clampHP(f.HP, f.MaxHP)
	}
	w.Say(domain.MessageInfo, fmt.Sprintf("%s снимает: %s.", w.NameOf(actor), w.NameOf(item)))
	return nil
}

// clampHP держит живого бойца в пределах [1, maxHP].
func clampHP(hp, maxHP int) int {
	if hp <= 0 {
		return hp
	}
	return max(min(hp, maxHP), 1)
}
