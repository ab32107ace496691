package domain

import "strings"

// EffectKind - тег варианта ItemEffect.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectHeal
	EffectDamageNearest
	EffectDamageArea
	EffectConfuse
	EffectParalyze
	EffectTeleport
	EffectIdentify
)

var effectKindToString = map[EffectKind]string{
	EffectNone:          "NONE",
	EffectHeal:          "HEAL",
	EffectDamageNearest: "DAMAGE_NEAREST",
	EffectDamageArea:    "DAMAGE_AREA",
	EffectConfuse:       "CONFUSE",
	EffectParalyze:      "PARALYZE",
	EffectTeleport:      "TELEPORT",
	EffectIdentify:      "IDENTIFY",
}

var effectStringToKind = map[string]EffectKind{}

func init() {
	for k, v := range effectKindToString {
		effectStringToKind[v] = k
	}
}

func (k EffectKind) String() string {
	if val, ok := effectKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEffectKind - false для неизвестного тега.
func ParseEffectKind(s string) (EffectKind, bool) {
	k, ok := effectStringToKind[strings.ToUpper(s)]
	return k, ok
}

// ItemEffect - размеченное объединение эффектов предмета.
// Какие поля значимы, определяет Kind:
//
//	Heal           Amount
//	DamageNearest  Amount, Range  (ближайший видимый враг)
//	DamageArea     Amount, Range  (радиус вокруг выбранной клетки)
//	Confuse        Turns, Range
//	Paralyze       Turns, Range
//	Teleport       —
//	Identify       —
type ItemEffect struct {
	Kind   EffectKind
	Amount int
	Range  int
	Turns  int
}

func Heal(amount int) ItemEffect {
	return ItemEffect{Kind: EffectHeal, Amount: amount}
}

func DamageNearest(amount, maxRange int) ItemEffect {
	return ItemEffect{Kind: EffectDamageNearest, Amount: amount, Range: maxRange}
}

func DamageArea(amount, radius int) ItemEffect {
	return ItemEffect{Kind: EffectDamageArea, Amount: amount, Range: radius}
}

func Confuse(turns, maxRange int) ItemEffect {
	return ItemEffect{Kind: EffectConfuse, Turns: turns, Range: maxRange}
}

func Paralyze(turns, maxRange int) ItemEffect {
	return ItemEffect{Kind: EffectParalyze, Turns: turns, Range: maxRange}
}

func Teleport() ItemEffect { return ItemEffect{Kind: EffectTeleport} }

func Identify() ItemEffect { return ItemEffect{Kind: EffectIdentify} }

// NeedsTargetTile - эффект требует указать клетку.
func (e ItemEffect) NeedsTargetTile() bool {
	return e.Kind == EffectDamageArea
}

// IsConsumable - предмет исчезает после применения.
func (e ItemEffect) IsConsumable() bool {
	return e.Kind != EffectNone
}
