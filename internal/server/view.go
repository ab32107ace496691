package server

import (
	"strconv"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/engine"
	"github.com/yuru-sha/roguelike-sub000/pkg/api"
)

var tileSymbols = map[enums.TileKind]string{
	enums.TileWall:       "#",
	enums.TileFloor:      ".",
	enums.TileStairsUp:   "<",
	enums.TileStairsDown: ">",
}

// buildResponse переводит снимок движка в DTO клиента.
func buildResponse(kind string, snap engine.Snapshot, logs []domain.Message) api.ServerResponse {
	resp := api.ServerResponse{
		Type:       kind,
		Tick:       snap.Turn,
		Depth:      snap.Depth,
		MyEntityID: idText(snap.Player.ID),
		GameOver:   snap.GameOver,
		Grid:       &api.GridMeta{Width: snap.Width, Height: snap.Height},
		Map:        make([]api.TileView, 0, len(snap.Tiles)),
		Entities:   make([]api.EntityView, 0, len(snap.Entities)),
		Logs:       logEntries(logs),
	}

	for _, t := range snap.Tiles {
		resp.Map = append(resp.Map, api.TileView{
			X: t.X, Y: t.Y,
			Symbol:     tileSymbols[t.Kind],
			Kind:       t.Kind.String(),
			IsWall:     t.Kind == enums.TileWall,
			IsVisible:  t.Visible,
			IsExplored: t.Explored,
		})
	}
	for _, e := range snap.Entities {
		resp.Entities = append(resp.Entities, entityView(e))
	}

	p := snap.Player
	player := &api.PlayerView{
		Stats:     statsView(p.Fighter),
		Level:     p.Level.Current,
		XP:        p.Level.XP,
		XPToNext:  p.Level.XPToNext,
		Inventory: api.InventoryView{Items: make([]api.ItemView, 0, len(p.Items)), MaxSlots: p.Capacity},
		Equipment: api.EquipmentView{Slots: make(map[string]string, len(p.Equipped))},
	}
	for _, it := range p.Items {
		player.Inventory.Items = append(player.Inventory.Items, itemView(it))
	}
	for slot, id := range p.Equipped {
		player.Equipment.Slots[slot.String()] = idText(id)
	}
	resp.Player = player
	return resp
}

// errorResponse - отказ с кодом из таксономии и предупреждениями движка
// (например, "Путь прегражден").
func errorResponse(err error, code string, logs []domain.Message) api.ServerResponse {
	return api.ServerResponse{
		Type:  api.ResponseError,
		Error: err.Error(),
		Code:  code,
		Logs:  logEntries(logs),
	}
}

func entityView(e engine.EntityView) api.EntityView {
	v := api.EntityView{
		ID:   idText(e.ID),
		Type: entityType(e).String(),
		Name: e.Name,
	}
	v.Pos.X, v.Pos.Y = e.X, e.Y
	v.Render.Symbol = e.Glyph.Symbol()
	v.Render.Color = e.Glyph.HexColor()
	v.Render.Order = int(e.Order)
	if e.Fighter != nil {
		s := statsView(*e.Fighter)
		v.Stats = &s
	}
	return v
}

func entityType(e engine.EntityView) enums.EntityType {
	switch {
	case e.IsPlayer:
		return enums.EntityTypePlayer
	case e.IsHostile:
		return enums.EntityTypeEnemy
	case e.IsCorpse:
		return enums.EntityTypeCorpse
	case e.IsItem:
		return enums.EntityTypeItem
	}
	return enums.EntityTypeObject
}

func statsView(f domain.Fighter) api.StatsView {
	return api.StatsView{
		HP:      f.HP,
		MaxHP:   f.MaxHP,
		Power:   f.Power,
		Defense: f.Defense,
		IsDead:  f.IsDead(),
	}
}

func itemView(it engine.ItemView) api.ItemView {
	v := api.ItemView{
		ID:         idText(it.ID),
		Name:       it.Name,
		Symbol:     it.Glyph.Symbol(),
		Color:      it.Glyph.HexColor(),
		Category:   itemCategory(it).String(),
		Identified: it.Identified,
	}
	if it.Equipment != nil {
		v.Equipped = it.Equipped
		v.Slot = it.Equipment.Slot.String()
		v.Power = it.Equipment.PowerBonus
		v.Defense = it.Equipment.DefenseBonus
	}
	return v
}

func itemCategory(it engine.ItemView) enums.ItemCategory {
	switch {
	case it.Corpse:
		return enums.ItemCategoryCorpse
	case it.Equipment != nil:
		return enums.ItemCategoryEquipment
	}
	return enums.ItemCategoryConsumable
}

func logEntries(msgs []domain.Message) []api.LogEntry {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]api.LogEntry, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, api.LogEntry{Text: m.Text, Type: string(m.Kind), Turn: m.Turn})
	}
	return out
}

func idText(id types.EntityID) string {
	return strconv.FormatUint(uint64(id), 10)
}
