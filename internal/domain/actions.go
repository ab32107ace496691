package domain

import "strings"

// ActionType - вид намерения, пришедшего от слоя ввода.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionWait
	ActionStairs
	ActionPickup
	ActionUseItem
	ActionDrop
	ActionEquip
	ActionUnequip

	// Команды администратора, доступны только при включённых читах.
	ActionAdminTeleport
	ActionAdminSpawn
	ActionAdminHeal
	ActionAdminKill
)

var actionStringToType = map[string]ActionType{
	"MOVE":     ActionMove,
	"WAIT":     ActionWait,
	"STAIRS":   ActionStairs,
	"PICKUP":   ActionPickup,
	"USE_ITEM": ActionUseItem,
	"DROP":     ActionDrop,
	"EQUIP":    ActionEquip,
	"UNEQUIP":  ActionUnequip,

	"ADMIN_TELEPORT": ActionAdminTeleport,
	"ADMIN_SPAWN":    ActionAdminSpawn,
	"ADMIN_HEAL":     ActionAdminHeal,
	"ADMIN_KILL":     ActionAdminKill,
}

var actionTypeToString = map[ActionType]string{
	ActionMove:    "MOVE",
	ActionWait:    "WAIT",
	ActionStairs:  "STAIRS",
	ActionPickup:  "PICKUP",
	ActionUseItem: "USE_ITEM",
	ActionDrop:    "DROP",
	ActionEquip:   "EQUIP",
	ActionUnequip: "UNEQUIP",

	ActionAdminTeleport: "ADMIN_TELEPORT",
	ActionAdminSpawn:    "ADMIN_SPAWN",
	ActionAdminHeal:     "ADMIN_HEAL",
	ActionAdminKill:     "ADMIN_KILL",
}

// ParseAction нечувствителен к регистру.
func ParseAction(s string) ActionType {
	if val, ok := actionStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

func (a ActionType) String() string {
	if val, ok := actionTypeToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// StairsDirection - куда ведёт лестница.
type StairsDirection string

const (
	StairsDown StairsDirection = "down"
	StairsUp   StairsDirection = "up"
)
