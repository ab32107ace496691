package enums

import "strings"

// EntityType - вид сущности для клиента. Выводится из набора компонентов.
type EntityType uint8

const (
	EntityTypeUnknown EntityType = iota
	EntityTypePlayer
	EntityTypeEnemy
	EntityTypeItem
	EntityTypeCorpse
	EntityTypeObject
)

var entityTypeToString = map[EntityType]string{
	EntityTypePlayer: "PLAYER",
	EntityTypeEnemy:  "ENEMY",
	EntityTypeItem:   "ITEM",
	EntityTypeCorpse: "CORPSE",
	EntityTypeObject: "OBJECT",
}

var entityTypeStringToType = map[string]EntityType{
	"PLAYER": EntityTypePlayer,
	"ENEMY":  EntityTypeEnemy,
	"ITEM":   EntityTypeItem,
	"CORPSE": EntityTypeCorpse,
	"OBJECT": EntityTypeObject,
}

func (e EntityType) String() string {
	if val, ok := entityTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityType - обратное преобразование для клиентов протокола.
func ParseEntityType(s string) EntityType {
	if val, ok := entityTypeStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EntityTypeUnknown
}
