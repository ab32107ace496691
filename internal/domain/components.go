package domain

import (
	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
)

// Виды компонентов. Числа в сохранения не попадают: кодек пишет строковые теги.
const (
	KindPosition ecs.Kind = iota + 1
	KindRenderable
	KindName
	KindFighter
	KindAI
	KindInventory
	KindItem
	KindEquipment
	KindEquipmentSlots
	KindLevel
	KindCorpse
)

// Renderable - то, что отдаётся слою отрисовки.
type Renderable struct {
	Glyph types.Glyph
	Order enums.RenderOrder
}

func (*Renderable) Kind() ecs.Kind { return KindRenderable }

// Name - отображаемое имя.
type Name struct {
	Value string
}

func (*Name) Kind() ecs.Kind { return KindName }

// AI - поведение неигровой сущности.
type AI struct {
	State          enums.AIState
	TurnsRemaining int // 0 — состояние бессрочное
}

func (*AI) Kind() ecs.Kind { return KindAI }

// Corpse - останки. Связь с погибшим только по имени: сама сущность удалена.
type Corpse struct {
	OriginalName string
}

func (*Corpse) Kind() ecs.Kind { return KindCorpse }

// Item - предмет, который можно поднять. Эффект применяется при использовании.
type Item struct {
	Effect     ItemEffect
	Identified bool
}

func (*Item) Kind() ecs.Kind { return KindItem }
