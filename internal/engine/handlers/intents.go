package handlers

import (
	"fmt"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/systems"
)

// Move - шаг на соседнюю клетку или удар по тому, кто на ней стоит.
type Move struct {
	DX, DY int
}

func (Move) Action() domain.ActionType { return domain.ActionMove }

func (m Move) Validate() error {
	if m.DX == 0 && m.DY == 0 {
		return fmt.Errorf("movement vector cannot be zero")
	}
	if m.DX < -1 || m.DX > 1 || m.DY < -1 || m.DY > 1 {
		return fmt.Errorf("movement step too large")
	}
	return nil
}

type Wait struct{}

func (Wait) Action() domain.ActionType { return domain.ActionWait }

type UseStairs struct {
	Direction domain.StairsDirection
}

func (UseStairs) Action() domain.ActionType { return domain.ActionStairs }

func (s UseStairs) Validate() error {
	if s.Direction != domain.StairsDown && s.Direction != domain.StairsUp {
		return fmt.Errorf("unknown stairs direction %q", s.Direction)
	}
	return nil
}

type Pickup struct{}

func (Pickup) Action() domain.ActionType { return domain.ActionPickup }

// UseItem - применить предмет из инвентаря. Target нужен свиткам по области.
type UseItem struct {
	Item   types.EntityID
	Target systems.Target
}

func (UseItem) Action() domain.ActionType { return domain.ActionUseItem }

func (u UseItem) Validate() error {
	if u.Item.IsNil() {
		return fmt.Errorf("item is required")
	}
	return nil
}

type Drop struct {
	Item types.EntityID
}

func (Drop) Action() domain.ActionType { return domain.ActionDrop }

func (d Drop) Validate() error {
	if d.Item.IsNil() {
		return fmt.Errorf("item is required")
	}
	return nil
}

type Equip struct {
	Item types.EntityID
}

func (Equip) Action() domain.ActionType { return domain.ActionEquip }

func (e Equip) Validate() error {
	if e.Item.IsNil() {
		return fmt.Errorf("item is required")
	}
	return nil
}

// Teleport - перенос игрока в заданную клетку (читы).
type Teleport struct {
	To domain.Point
}

func (Teleport) Action() domain.ActionType { return domain.ActionAdminTeleport }

// Spawn - создать монстра рядом с игроком или предмет под ним (читы).
type Spawn struct {
	Template string
}

func (Spawn) Action() domain.ActionType { return domain.ActionAdminSpawn }

func (s Spawn) Validate() error {
	if s.Template == "" {
		return fmt.Errorf("template is required")
	}
	return nil
}

type Heal struct{}

func (Heal) Action() domain.ActionType { return domain.ActionAdminHeal }

type Kill struct {
	Target types.EntityID
}

func (Kill) Action() domain.ActionType { return domain.ActionAdminKill }

func (k Kill) Validate() error {
	if k.Target.IsNil() {
		return fmt.Errorf("target is required")
	}
	return nil
}

type Unequip struct {
	Slot enums.EquipmentSlot
}

func (Unequip) Action() domain.ActionType { return domain.ActionUnequip }

func (u Unequip) Validate() error {
	if u.Slot == enums.SlotNone {
		return fmt.Errorf("slot is required")
	}
	return nil
}
