package handlers

import (
	"encoding/json"
	"strings"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/pkg/api"
)

type decoderFunc func(raw json.RawMessage) (Intent, error)

var decoders = map[domain.ActionType]decoderFunc{
	domain.ActionMove: withPayload(func(p api.DirectionPayload) (Intent, error) {
		return Move{DX: p.Dx, DY: p.Dy}, nil
	}),
	domain.ActionWait:   empty(Wait{}),
	domain.ActionPickup: empty(Pickup{}),
	domain.ActionStairs: withPayload(func(p api.StairsPayload) (Intent, error) {
		return UseStairs{Direction: domain.StairsDirection(strings.ToLower(p.Direction))}, nil
	}),
	domain.ActionUseItem: withPayload(func(p api.ItemPayload) (Intent, error) {
		item, err := parseID(p.ItemID)
		if err != nil {
			return nil, err
		}
		intent := UseItem{Item: item}
		if p.Target != nil {
			intent.Target.Tile = &domain.Point{X: p.Target.X, Y: p.Target.Y}
		}
		if p.TargetItemID != "" {
			if intent.Target.Item, err = parseID(p.TargetItemID); err != nil {
				return nil, err
			}
		}
		return intent, nil
	}),
	domain.ActionDrop: withPayload(func(p api.ItemPayload) (Intent, error) {
		item, err := parseID(p.ItemID)
		return Drop{Item: item}, err
	}),
	domain.ActionEquip: withPayload(func(p api.ItemPayload) (Intent, error) {
		item, err := parseID(p.ItemID)
		return Equip{Item: item}, err
	}),
	domain.ActionUnequip: withPayload(func(p api.SlotPayload) (Intent, error) {
		slot := enums.ParseEquipmentSlot(p.Slot)
		if slot == enums.SlotNone {
			return nil, errors.InvalidArgumentf("unknown slot %q", p.Slot)
		}
		return Unequip{Slot: slot}, nil
	}),

	domain.ActionAdminTeleport: withPayload(func(p api.TeleportPayload) (Intent, error) {
		return Teleport{To: domain.Point{X: p.X, Y: p.Y}}, nil
	}),
	domain.ActionAdminSpawn: withPayload(func(p api.SpawnPayload) (Intent, error) {
		return Spawn{Template: strings.ToLower(p.Template)}, nil
	}),
	domain.ActionAdminHeal: empty(Heal{}),
	domain.ActionAdminKill: withPayload(func(p api.KillPayload) (Intent, error) {
		target, err := parseID(p.TargetID)
		return Kill{Target: target}, err
	}),
}

// Decode превращает команду клиента в намерение.
func Decode(cmd api.ClientCommand) (Intent, error) {
	action := domain.ParseAction(cmd.Action)
	decode, ok := decoders[action]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown action %q", cmd.Action)
	}
	return decode(cmd.Payload)
}

// withPayload берет на себя Unmarshal и Validate.
func withPayload[T any](build func(T) (Intent, error)) decoderFunc {
	return func(raw json.RawMessage) (Intent, error) {
		var payload T

		// 1. Распаковка JSON
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid payload format")
		}

		// 2. Автоматическая валидация
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "validation failed")
			}
		}

		return build(payload)
	}
}

// empty - для команд без данных: входящий JSON игнорируется.
func empty(intent Intent) decoderFunc {
	return func(json.RawMessage) (Intent, error) {
		return intent, nil
	}
}

func parseID(s string) (types.EntityID, error) {
	var id types.EntityID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		return types.NilEntityID, errors.WrapWithCode(err, errors.CodeInvalidArgument, "bad entity id")
	}
	return id, nil
}

