package enums

import "strings"

// AIState - состояние конечного автомата ИИ-сущности.
type AIState uint8

const (
	AIStateUnknown AIState = iota
	AIStateHostile
	AIStateConfused
	AIStateParalyzed
	AIStateFleeing
)

var aiStateToString = map[AIState]string{
	AIStateHostile:   "HOSTILE",
	AIStateConfused:  "CONFUSED",
	AIStateParalyzed: "PARALYZED",
	AIStateFleeing:   "FLEEING",
}

var aiStateStringToType = map[string]AIState{
	"HOSTILE":   AIStateHostile,
	"CONFUSED":  AIStateConfused,
	"PARALYZED": AIStateParalyzed,
	"FLEEING":   AIStateFleeing,
}

func (s AIState) String() string {
	if val, ok := aiStateToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseAIState(s string) AIState {
	if val, ok := aiStateStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return AIStateUnknown
}
