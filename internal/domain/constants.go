package domain

import "github.com/yuru-sha/roguelike-sub000/internal/core/types"

// Параметры по умолчанию. Размеры карты и комнат переопределяются конфигурацией.
const (
	DefaultMapWidth   = 80
	DefaultMapHeight  = 43
	DefaultRoomMin    = 6
	DefaultRoomMax    = 10
	DefaultMaxRooms   = 30
	DefaultTorchRange = 10

	MaxMonstersPerRoom = 3
	MaxItemsPerRoom    = 2
)

// Игрок
const (
	PlayerHP                = 30
	PlayerDefense           = 2
	PlayerPower             = 5
	PlayerInventoryCapacity = 26
	PlayerBaseXPToNext      = 200
	LevelUpFactor           = 1.5

	// Прибавка за каждый полученный уровень.
	LevelUpMaxHP   = 20
	LevelUpDefense = 1
	LevelUpPower   = 1
)

// Глифы
var (
	GlyphPlayer = types.MakeGlyph(0xFFFFFF, '@')
	GlyphCorpse = types.MakeGlyph(0xBF0000, '%')
)

// CorpseNamePrefix - имя трупа: префикс + имя погибшего.
const CorpseNamePrefix = "Останки: "

// MessageLogLimit - сколько последних сообщений держит журнал.
const MessageLogLimit = 100
