package storage

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// ComponentModule - модуль-тег всех компонентов игры.
const ComponentModule = "domain"

// Fields - поля компонента в сохранении.
type Fields = map[string]any

// componentCodec - запись и чтение одного вида компонента.
type componentCodec struct {
	tag    string
	encode func(ecs.Component) Fields
	decode func(*fieldReader) ecs.Component
}

// codecFor связывает тег с типизированными функциями, чтобы реестр
// проверялся компилятором, а не по строкам.
func codecFor[T ecs.Component](tag string, enc func(T) Fields, dec func(*fieldReader) T) componentCodec {
	return componentCodec{
		tag:    tag,
		encode: func(c ecs.Component) Fields { return enc(c.(T)) },
		decode: func(r *fieldReader) ecs.Component { return dec(r) },
	}
}

// registry - закрытый перечень сохраняемых компонентов.
var registry = map[ecs.Kind]componentCodec{
	domain.KindPosition: codecFor("Position",
		func(p *domain.Position) Fields { return Fields{"x": p.X, "y": p.Y} },
		func(r *fieldReader) *domain.Position {
			return &domain.Position{X: r.int("x"), Y: r.int("y")}
		}),

	domain.KindRenderable: codecFor("Renderable",
		func(c *domain.Renderable) Fields {
			return Fields{"char": c.Glyph.Symbol(), "color": c.Glyph.Color(), "render_order": int(c.Order)}
		},
		func(r *fieldReader) *domain.Renderable {
			return &domain.Renderable{Glyph: r.glyph("char", "color"), Order: enums.RenderOrder(r.int("render_order"))}
		}),

	domain.KindName: codecFor("Name",
		func(n *domain.Name) Fields { return Fields{"value": n.Value} },
		func(r *fieldReader) *domain.Name { return &domain.Name{Value: r.str("value")} }),

	domain.KindFighter: codecFor("Fighter",
		func(f *domain.Fighter) Fields {
			return Fields{"hp": f.HP, "max_hp": f.MaxHP, "defense": f.Defense, "power": f.Power, "xp": f.XP}
		},
		func(r *fieldReader) *domain.Fighter {
			return &domain.Fighter{HP: r.int("hp"), MaxHP: r.int("max_hp"), Defense: r.int("defense"), Power: r.int("power"), XP: r.int("xp")}
		}),

	domain.KindAI: codecFor("AI",
		func(a *domain.AI) Fields {
			return Fields{"state": a.State.String(), "turns_remaining": a.TurnsRemaining}
		},
		func(r *fieldReader) *domain.AI {
			st := enums.ParseAIState(r.str("state"))
			if st == enums.AIStateUnknown {
				r.fail("state", "unknown ai state")
			}
			return &domain.AI{State: st, TurnsRemaining: r.int("turns_remaining")}
		}),

	domain.KindInventory: codecFor("Inventory",
		func(inv *domain.Inventory) Fields {
			return Fields{"capacity": inv.Capacity, "items": idList(inv.Items)}
		},
		func(r *fieldReader) *domain.Inventory {
			return &domain.Inventory{Capacity: r.int("capacity"), Items: r.ids("items")}
		}),

	domain.KindItem: codecFor("Item",
		func(it *domain.Item) Fields {
			return Fields{
				"identified": it.Identified,
				"effect": Fields{
					"kind":   it.Effect.Kind.String(),
					"amount": it.Effect.Amount,
					"range":  it.Effect.Range,
					"turns":  it.Effect.Turns,
				},
			}
		},
		func(r *fieldReader) *domain.Item {
			eff := r.nested("effect")
			kind, ok := domain.ParseEffectKind(eff.str("kind"))
			if !ok {
				r.fail("effect.kind", "unknown effect")
			}
			item := &domain.Item{
				Identified: r.boolean("identified"),
				Effect: domain.ItemEffect{
					Kind:   kind,
					Amount: eff.int("amount"),
					Range:  eff.int("range"),
					Turns:  eff.int("turns"),
				},
			}
			r.absorb(eff)
			return item
		}),

	domain.KindEquipment: codecFor("Equipment",
		func(e *domain.Equipment) Fields {
			return Fields{
				"slot":          e.Slot.String(),
				"power_bonus":   e.PowerBonus,
				"defense_bonus": e.DefenseBonus,
				"max_hp_bonus":  e.MaxHPBonus,
				"cursed":        e.Cursed,
			}
		},
		func(r *fieldReader) *domain.Equipment {
			slot := enums.ParseEquipmentSlot(r.str("slot"))
			if slot == enums.SlotNone {
				r.fail("slot", "unknown equipment slot")
			}
			return &domain.Equipment{
				Slot:         slot,
				PowerBonus:   r.int("power_bonus"),
				DefenseBonus: r.int("defense_bonus"),
				MaxHPBonus:   r.int("max_hp_bonus"),
				Cursed:       r.boolean("cursed"),
			}
		}),

	domain.KindEquipmentSlots: codecFor("EquipmentSlots",
		func(e *domain.EquipmentSlots) Fields {
			slots := Fields{}
			for slot, id := range e.Slots {
				slots[slot.String()] = idString(id)
			}
			return Fields{"slots": slots}
		},
		func(r *fieldReader) *domain.EquipmentSlots {
			out := domain.NewEquipmentSlots()
			slots := r.nested("slots")
			for name := range slots.f {
				slot := enums.ParseEquipmentSlot(name)
				if slot == enums.SlotNone {
					r.fail("slots."+name, "unknown equipment slot")
					continue
				}
				out.Slots[slot] = slots.id(name)
			}
			r.absorb(slots)
			return out
		}),

	domain.KindLevel: codecFor("Level",
		func(l *domain.Level) Fields {
			return Fields{"current": l.Current, "xp": l.XP, "xp_to_next": l.XPToNext}
		},
		func(r *fieldReader) *domain.Level {
			return &domain.Level{Current: r.int("current"), XP: r.int("xp"), XPToNext: r.int("xp_to_next")}
		}),

	domain.KindCorpse: codecFor("Corpse",
		func(c *domain.Corpse) Fields { return Fields{"original_name": c.OriginalName} },
		func(r *fieldReader) *domain.Corpse { return &domain.Corpse{OriginalName: r.str("original_name")} }),
}

var tagToKind = func() map[string]ecs.Kind {
	m := make(map[string]ecs.Kind, len(registry))
	for kind, c := range registry {
		m[c.tag] = kind
	}
	return m
}()

// EncodeComponent пишет компонент в форме {type, module, fields}.
func EncodeComponent(c ecs.Component) (ComponentRecord, error) {
	codec, ok := registry[c.Kind()]
	if !ok {
		return ComponentRecord{}, errors.InvalidArgumentf("component kind %d is not registered", c.Kind())
	}
	return ComponentRecord{Type: codec.tag, Module: ComponentModule, Fields: codec.encode(c)}, nil
}

// DecodeComponent восстанавливает компонент по тегу. Порядок записей не важен.
func DecodeComponent(rec ComponentRecord) (ecs.Component, error) {
	if rec.Module != ComponentModule {
		return nil, errors.Newf(errors.CodeSaveIntegrityFailure, "unknown component module %q", rec.Module)
	}
	kind, ok := tagToKind[rec.Type]
	if !ok {
		return nil, errors.Newf(errors.CodeSaveIntegrityFailure, "unknown component type %q", rec.Type)
	}
	r := &fieldReader{f: rec.Fields}
	c := registry[kind].decode(r)
	if r.err != nil {
		return nil, errors.WrapWithCodef(r.err, errors.CodeSaveIntegrityFailure, "decode %s", rec.Type)
	}
	return c, nil
}

func idString(id types.EntityID) string {
	return strconv.FormatUint(uint64(id), 10)
}

func idList(ids []types.EntityID) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = idString(id)
	}
	return out
}

// fieldReader читает поля, запоминая первую ошибку. Числа приходят либо
// как Go-значения (запись из памяти), либо как json.Number (из файла).
type fieldReader struct {
	f   map[string]any
	err error
}

func (r *fieldReader) fail(key, reason string) {
	if r.err == nil {
		r.err = fmt.Errorf("field %q: %s", key, reason)
	}
}

func (r *fieldReader) absorb(o *fieldReader) {
	if r.err == nil {
		r.err = o.err
	}
}

func (r *fieldReader) raw(key string) (any, bool) {
	v, ok := r.f[key]
	if !ok {
		r.fail(key, "missing")
	}
	return v, ok
}

func (r *fieldReader) int(key string) int {
	v, ok := r.raw(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case uint32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			r.fail(key, "not an integer")
		}
		return int(i)
	}
	r.fail(key, fmt.Sprintf("unexpected %T", v))
	return 0
}

func (r *fieldReader) str(key string) string {
	v, ok := r.raw(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, "not a string")
	}
	return s
}

// glyph собирает глиф из символа и цвета 0xRRGGBB.
func (r *fieldReader) glyph(charKey, colorKey string) types.Glyph {
	s := []rune(r.str(charKey))
	if len(s) != 1 || s[0] > 0xFF {
		r.fail(charKey, "expected a single 8-bit character")
		return 0
	}
	color := r.int(colorKey)
	if color < 0 || color > 0xFFFFFF {
		r.fail(colorKey, "color out of range")
		return 0
	}
	return types.MakeGlyph(uint32(color), byte(s[0]))
}

func (r *fieldReader) boolean(key string) bool {
	v, ok := r.raw(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(key, "not a bool")
	}
	return b
}

func (r *fieldReader) id(key string) types.EntityID {
	s := r.str(key)
	if r.err != nil {
		return types.NilEntityID
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		r.fail(key, "bad entity id")
	}
	return types.EntityID(n)
}

func (r *fieldReader) ids(key string) []types.EntityID {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		r.fail(key, "not a list")
		return nil
	}
	if len(list) == 0 {
		return nil
	}
	out := make([]types.EntityID, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		n, err := strconv.ParseUint(s, 10, 64)
		if !ok || err != nil {
			r.fail(fmt.Sprintf("%s[%d]", key, i), "bad entity id")
			return nil
		}
		out = append(out, types.EntityID(n))
	}
	return out
}

func (r *fieldReader) nested(key string) *fieldReader {
	v, ok := r.raw(key)
	if !ok {
		return &fieldReader{f: map[string]any{}}
	}
	m, ok := v.(map[string]any)
	if !ok {
		r.fail(key, "not an object")
		return &fieldReader{f: map[string]any{}}
	}
	return &fieldReader{f: m}
}
