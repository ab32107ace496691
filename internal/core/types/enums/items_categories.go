package enums

import "strings"

type ItemCategory uint8

const (
	ItemCategoryUnknown    ItemCategory = iota // 0
	ItemCategoryConsumable                     // 1
	ItemCategoryEquipment                      // 2
	ItemCategoryCorpse                         // 3
)

var itemCategoryToString = map[ItemCategory]string{
	ItemCategoryConsumable: "CONSUMABLE",
	ItemCategoryEquipment:  "EQUIPMENT",
	ItemCategoryCorpse:     "CORPSE",
}

var itemCategoryStringToType = map[string]ItemCategory{
	"CONSUMABLE": ItemCategoryConsumable,
	"EQUIPMENT":  ItemCategoryEquipment,
	"CORPSE":     ItemCategoryCorpse,
}

func (c ItemCategory) String() string {
	if val, ok := itemCategoryToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseItemCategory(s string) ItemCategory {
	if val, ok := itemCategoryStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return ItemCategoryUnknown
}
