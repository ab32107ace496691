package enums

import "strings"

// EquipmentSlot - слот экипировки. Значения стабильны: они попадают в сохранения.
type EquipmentSlot uint8

const (
	SlotNone      EquipmentSlot = 0
	SlotMainHand  EquipmentSlot = 1
	SlotOffHand   EquipmentSlot = 2
	SlotAmmo      EquipmentSlot = 3
	SlotBody      EquipmentSlot = 10
	SlotHead      EquipmentSlot = 11
	SlotCloak     EquipmentSlot = 12
	SlotGloves    EquipmentSlot = 13
	SlotBelt      EquipmentSlot = 14
	SlotLegs      EquipmentSlot = 15
	SlotFeet      EquipmentSlot = 16
	SlotNeck      EquipmentSlot = 20
	SlotRightRing EquipmentSlot = 21
	SlotLeftRing  EquipmentSlot = 22
	SlotLight     EquipmentSlot = 23
)

var slotToString = map[EquipmentSlot]string{
	SlotMainHand:  "MAIN_HAND",
	SlotOffHand:   "OFF_HAND",
	SlotAmmo:      "AMMO",
	SlotBody:      "BODY",
	SlotHead:      "HEAD",
	SlotCloak:     "CLOAK",
	SlotGloves:    "GLOVES",
	SlotBelt:      "BELT",
	SlotLegs:      "LEGS",
	SlotFeet:      "FEET",
	SlotNeck:      "NECK",
	SlotRightRing: "RIGHT_RING",
	SlotLeftRing:  "LEFT_RING",
	SlotLight:     "LIGHT",
}

var slotStringToType = map[string]EquipmentSlot{}

func init() {
	for slot, name := range slotToString {
		slotStringToType[name] = slot
	}
}

func (s EquipmentSlot) String() string {
	if val, ok := slotToString[s]; ok {
		return val
	}
	return "NONE"
}

func ParseEquipmentSlot(s string) EquipmentSlot {
	if val, ok := slotStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return SlotNone
}
