package dungeon

import (
	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
)

// MonsterTemplate определяет шаблон монстра.
type MonsterTemplate struct {
	Key     string
	Name    string
	Glyph   types.Glyph
	HP      int
	Defense int
	Power   int
	XP      int
}

// ItemTemplate определяет шаблон предмета. Equipment != nil — предмет надевается.
type ItemTemplate struct {
	Key       string
	Name      string
	Glyph     types.Glyph
	Effect    domain.ItemEffect
	Equipment *domain.Equipment
}

// --- ВРАГИ ---

var Orc = MonsterTemplate{
	Key: "orc", Name: "Орк", Glyph: types.MakeGlyph(0x3FBF3F, 'o'),
	HP: 10, Defense: 0, Power: 3, XP: 35,
}

var Troll = MonsterTemplate{
	Key: "troll", Name: "Тролль", Glyph: types.MakeGlyph(0x007F00, 'T'),
	HP: 16, Defense: 1, Power: 4, XP: 100,
}

// MonsterTemplates - все доступные монстры.
var MonsterTemplates = map[string]MonsterTemplate{
	Orc.Key:   Orc,
	Troll.Key: Troll,
}

// --- ПРЕДМЕТЫ ---

var HealingPotion = ItemTemplate{
	Key: "healing_potion", Name: "Зелье лечения", Glyph: types.MakeGlyph(0x7F00FF, '!'),
	Effect: domain.Heal(40),
}

var LightningScroll = ItemTemplate{
	Key: "lightning_scroll", Name: "Свиток молнии", Glyph: types.MakeGlyph(0xFFFF00, '#'),
	Effect: domain.DamageNearest(40, 5),
}

var FireballScroll = ItemTemplate{
	Key: "fireball_scroll", Name: "Свиток огненного шара", Glyph: types.MakeGlyph(0xFF3F00, '#'),
	Effect: domain.DamageArea(25, 3),
}

var ConfusionScroll = ItemTemplate{
	Key: "confusion_scroll", Name: "Свиток смятения", Glyph: types.MakeGlyph(0xBF3FFF, '#'),
	Effect: domain.Confuse(10, 8),
}

var ParalyzeScroll = ItemTemplate{
	Key: "paralyze_scroll", Name: "Свиток паралича", Glyph: types.MakeGlyph(0x3F9FFF, '#'),
	Effect: domain.Paralyze(5, 8),
}

var TeleportScroll = ItemTemplate{
	Key: "teleport_scroll", Name: "Свиток телепортации", Glyph: types.MakeGlyph(0x00FFFF, '#'),
	Effect: domain.Teleport(),
}

var IdentifyScroll = ItemTemplate{
	Key: "identify_scroll", Name: "Свиток опознания", Glyph: types.MakeGlyph(0xFFFFFF, '#'),
	Effect: domain.Identify(),
}

var Sword = ItemTemplate{
	Key: "sword", Name: "Меч", Glyph: types.MakeGlyph(0x00BFFF, '/'),
	Equipment: &domain.Equipment{Slot: enums.SlotMainHand, PowerBonus: 3},
}

var Shield = ItemTemplate{
	Key: "shield", Name: "Щит", Glyph: types.MakeGlyph(0xBF7F00, '['),
	Equipment: &domain.Equipment{Slot: enums.SlotOffHand, DefenseBonus: 1},
}

var LeatherArmor = ItemTemplate{
	Key: "leather_armor", Name: "Кожаный доспех", Glyph: types.MakeGlyph(0x7F3F00, '['),
	Equipment: &domain.Equipment{Slot: enums.SlotBody, DefenseBonus: 1},
}

// ItemTemplates - все доступные предметы.
var ItemTemplates = map[string]ItemTemplate{
	HealingPotion.Key:   HealingPotion,
	LightningScroll.Key: LightningScroll,
	FireballScroll.Key:  FireballScroll,
	ConfusionScroll.Key: ConfusionScroll,
	ParalyzeScroll.Key:  ParalyzeScroll,
	TeleportScroll.Key:  TeleportScroll,
	IdentifyScroll.Key:  IdentifyScroll,
	Sword.Key:           Sword,
	Shield.Key:          Shield,
	LeatherArmor.Key:    LeatherArmor,
}
