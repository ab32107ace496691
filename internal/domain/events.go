package domain

import (
	"strings"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
)

// EventType - что произошло за ход, помимо сообщений журнала.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventLevelTransition
	EventEntityDied
	EventLevelUp
	EventPlayerDied
	EventItemConsumed
)

var eventStringToType = map[string]EventType{
	"LEVEL_TRANSITION": EventLevelTransition,
	"ENTITY_DIED":      EventEntityDied,
	"LEVEL_UP":         EventLevelUp,
	"PLAYER_DIED":      EventPlayerDied,
	"ITEM_CONSUMED":    EventItemConsumed,
}

var eventTypeToString = map[EventType]string{
	EventLevelTransition: "LEVEL_TRANSITION",
	EventEntityDied:      "ENTITY_DIED",
	EventLevelUp:         "LEVEL_UP",
	EventPlayerDied:      "PLAYER_DIED",
	EventItemConsumed:    "ITEM_CONSUMED",
}

func ParseEvent(s string) EventType {
	if val, ok := eventStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - факт хода. Entity — участник (погибший, получивший уровень, ...).
type Event struct {
	Type   EventType      `json:"type"`
	Entity types.EntityID `json:"entity,omitempty"`
	Value  int            `json:"value,omitempty"`
}
