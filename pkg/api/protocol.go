package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" мира, видимого игроку.
// Отправляется после каждой команды клиента.
type ServerResponse struct {
	// Type тип сообщения: "INIT", "UPDATE", "SAVED", "LOADED", "ERROR".
	Type string `json:"type"`

	// Tick номер хода. Растет только на принятых командах.
	Tick int `json:"tick"`

	// Depth текущий уровень подземелья, начиная с 1.
	Depth int `json:"depth"`

	// MyEntityID ID сущности игрока.
	MyEntityID string `json:"myEntityId,omitempty"`

	// GameOver true после смерти игрока. Новые ходы сервер отклоняет.
	GameOver bool `json:"gameOver,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез всех видимых и/или исследованных тайлов.
	Map []TileView `json:"map,omitempty"`

	// Entities срез всех видимых сущностей в порядке отрисовки.
	Entities []EntityView `json:"entities,omitempty"`

	// Player характеристики, инвентарь и экипировка игрока.
	Player *PlayerView `json:"player,omitempty"`

	// Logs срез новых сообщений, сгенерированных с прошлого хода.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error текст ошибки, если команда отклонена.
	Error string `json:"error,omitempty"`
	// Code код ошибки из таксономии сервера (OUT_OF_BOUNDS, FAILED_PRECONDITION, ...).
	Code string `json:"code,omitempty"`

	// Recovered true, если LOAD взял резервную копию вместо основного файла.
	Recovered bool `json:"recovered,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol визуальное представление тайла (e.g. "#" для стены, ">" для лестницы).
	Symbol string `json:"symbol"`
	// Kind WALL, FLOOR, STAIRS_UP, STAIRS_DOWN.
	Kind string `json:"kind"`

	// IsWall true, если тайл является непроходимым препятствием.
	IsWall bool `json:"isWall"`

	// IsVisible true, если тайл находится в текущем поле зрения. Рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored true, если тайл когда-либо был увиден. Используется для "тумана войны".
	IsExplored bool `json:"isExplored"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID   string `json:"id"`
	Type string `json:"type"` // PLAYER, ENEMY, ITEM, CORPSE
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
		Order  int    `json:"order"`
	} `json:"render"`

	// Stats характеристики бойца. Отсутствует у предметов и трупов.
	Stats *StatsView `json:"stats,omitempty"`
}

// StatsView это DTO для характеристик бойца.
type StatsView struct {
	HP      int  `json:"hp"`
	MaxHP   int  `json:"maxHp"`
	Power   int  `json:"power"`
	Defense int  `json:"defense"`
	IsDead  bool `json:"isDead"`
}

// PlayerView - то, что видно только о своем персонаже.
type PlayerView struct {
	Stats     StatsView     `json:"stats"`
	Level     int           `json:"level"`
	XP        int           `json:"xp"`
	XPToNext  int           `json:"xpToNext"`
	Inventory InventoryView `json:"inventory"`
	Equipment EquipmentView `json:"equipment"`
}

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	Text string `json:"text"`
	Type string `json:"type"` // INFO, COMBAT, WARNING, DEATH, LEVEL_UP
	Turn int    `json:"turn"`
}

// ItemView представляет предмет для клиента
type ItemView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Color      string `json:"color"`
	Category   string `json:"category"` // CONSUMABLE, EQUIPMENT, CORPSE
	Identified bool   `json:"identified"`
	Equipped   bool   `json:"equipped,omitempty"`
	Slot       string `json:"slot,omitempty"`
	Power      int    `json:"power,omitempty"`
	Defense    int    `json:"defense,omitempty"`
}

// InventoryView представляет инвентарь для клиента
type InventoryView struct {
	Items    []ItemView `json:"items"`
	MaxSlots int        `json:"maxSlots"`
}

// EquipmentView - слот -> ID предмета.
type EquipmentView struct {
	Slots map[string]string `json:"slots"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	// Игровые: MOVE, WAIT, STAIRS, PICKUP, USE_ITEM, DROP, EQUIP, UNEQUIP.
	// Служебные: INIT, SAVE, LOAD.
	// Читы (ENABLE_CHEATS): ADMIN_TELEPORT, ADMIN_SPAWN, ADMIN_HEAL, ADMIN_KILL.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload используется для действий, связанных с направлением (e.g. MOVE).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// StairsPayload - "down" или "up".
type StairsPayload struct {
	Direction string `json:"direction"`
}

// PositionPayload используется для действий, нацеленных на точку на карте (e.g. FIREBALL).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ItemPayload используется для действий с предметами (USE_ITEM, DROP, EQUIP).
type ItemPayload struct {
	ItemID string `json:"itemId"`

	// Target клетка для предметов по области.
	Target *PositionPayload `json:"target,omitempty"`
	// TargetItemID предмет-цель (свиток опознания).
	TargetItemID string `json:"targetItemId,omitempty"`
}

// SlotPayload используется для UNEQUIP.
type SlotPayload struct {
	Slot string `json:"slot"`
}

// SavePayload используется для SAVE и LOAD. Slot -1 — автосохранение.
type SavePayload struct {
	Slot int `json:"slot"`
}

// TeleportPayload: { "x": 10, "y": 10 }
type TeleportPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SpawnPayload: { "template": "orc" }. Ключ ищется среди монстров, затем предметов.
type SpawnPayload struct {
	Template string `json:"template"`
}

type KillPayload struct {
	TargetID string `json:"targetId"`
}

// InitPayload используется для INIT. Seed 0 — сид из конфигурации сервера.
type InitPayload struct {
	Seed int64 `json:"seed,omitempty"`
}

// Типы ответов сервера.
const (
	ResponseInit   = "INIT"
	ResponseUpdate = "UPDATE"
	ResponseSaved  = "SAVED"
	ResponseLoaded = "LOADED"
	ResponseError  = "ERROR"
)

// Служебные действия, которые не тратят ход.
const (
	ActionInit = "INIT"
	ActionSave = "SAVE"
	ActionLoad = "LOAD"
)
