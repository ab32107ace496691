package enums

import "strings"

// TileKind - тип клетки карты.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileStairsUp
	TileStairsDown
)

var tileKindToString = map[TileKind]string{
	TileWall:       "WALL",
	TileFloor:      "FLOOR",
	TileStairsUp:   "STAIRS_UP",
	TileStairsDown: "STAIRS_DOWN",
}

var tileKindStringToType = map[string]TileKind{
	"WALL":        TileWall,
	"FLOOR":       TileFloor,
	"STAIRS_UP":   TileStairsUp,
	"STAIRS_DOWN": TileStairsDown,
}

func (k TileKind) String() string {
	if val, ok := tileKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseTileKind возвращает false для неизвестного имени: сохранение с мусором
// в тайлах считается повреждённым, а не стеной.
func ParseTileKind(s string) (TileKind, bool) {
	val, ok := tileKindStringToType[strings.ToUpper(s)]
	return val, ok
}
