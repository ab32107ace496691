package storage

import (
	"time"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// SaveVersion - текущая версия формата записи.
const SaveVersion = "1.2.0"

// SaveRecord - версионированный снимок мира.
type SaveRecord struct {
	Version      string         `json:"version"`
	Timestamp    int64          `json:"timestamp"`
	PlayerID     types.EntityID `json:"player_id"`
	DungeonLevel int            `json:"dungeon_level"`
	// Tiles[y][x]; nil — клетки нет.
	Tiles     [][]*TileRecord `json:"tiles"`
	Entities  []EntityRecord  `json:"entities"`
	GameState GameStateRecord `json:"game_state"`
	Metadata  Metadata        `json:"metadata"`
}

type TileRecord struct {
	Kind        string `json:"kind"`
	Walkable    bool   `json:"walkable"`
	Transparent bool   `json:"transparent"`
	Explored    bool   `json:"explored"`
}

// EntityRecord - сущность с компонентами; записи идут в порядке создания.
type EntityRecord struct {
	ID         types.EntityID    `json:"id"`
	Components []ComponentRecord `json:"components"`
}

type ComponentRecord struct {
	Type   string `json:"type"`
	Module string `json:"module"`
	Fields Fields `json:"fields"`
}

type GameStateRecord struct {
	Settings Settings `json:"settings"`
}

type Settings struct {
	AutoSaveInterval int  `json:"auto_save_interval"`
	BackupEnabled    bool `json:"backup_enabled"`
}

type Metadata struct {
	RunID      string           `json:"run_id"`
	WrittenBy  string           `json:"written_by"`
	Turn       int              `json:"turn"`
	MessageLog []domain.Message `json:"message_log"`
}

// BuildRecord переводит состояние в запись. Состояние не меняется.
func BuildRecord(st State, settings Settings, writtenBy string, now time.Time) (*SaveRecord, error) {
	if st.Store == nil || st.Grid == nil {
		return nil, errors.InvalidArgument("state has no store or grid")
	}
	rec := &SaveRecord{
		Version:      SaveVersion,
		Timestamp:    now.Unix(),
		PlayerID:     st.Player,
		DungeonLevel: st.Depth,
		Tiles:        EncodeTiles(st.Grid),
		GameState:    GameStateRecord{Settings: settings},
		Metadata: Metadata{
			RunID:      st.RunID,
			WrittenBy:  writtenBy,
			Turn:       st.Turn,
			MessageLog: st.Messages,
		},
	}

	for _, id := range st.Store.Entities() {
		ent := EntityRecord{ID: id}
		for _, c := range st.Store.Components(id) {
			cr, err := EncodeComponent(c)
			if err != nil {
				return nil, errors.Wrapf(err, "entity %s", id)
			}
			ent.Components = append(ent.Components, cr)
		}
		rec.Entities = append(rec.Entities, ent)
	}
	return rec, nil
}

// Apply собирает новое хранилище (с теми же id) и сетку из записи.
func Apply(rec *SaveRecord) (State, error) {
	if rec.Version != SaveVersion {
		return State{}, errors.Newf(errors.CodeSaveIntegrityFailure, "record version %s, want %s", rec.Version, SaveVersion)
	}
	grid, err := DecodeTiles(rec.Tiles)
	if err != nil {
		return State{}, err
	}

	store := ecs.NewStore()
	for _, ent := range rec.Entities {
		if err := store.Restore(ent.ID); err != nil {
			return State{}, errors.WrapWithCodef(err, errors.CodeSaveIntegrityFailure, "restore entity %s", ent.ID)
		}
		for _, cr := range ent.Components {
			c, err := DecodeComponent(cr)
			if err != nil {
				return State{}, errors.Wrapf(err, "entity %s", ent.ID)
			}
			if err := store.Add(ent.ID, c); err != nil {
				return State{}, errors.WrapWithCodef(err, errors.CodeSaveIntegrityFailure, "attach %s to %s", cr.Type, ent.ID)
			}
		}
	}
	if !store.Alive(rec.PlayerID) {
		return State{}, errors.Newf(errors.CodeSaveIntegrityFailure, "player %s is not in the record", rec.PlayerID)
	}

	return State{
		Store:    store,
		Grid:     grid,
		Player:   rec.PlayerID,
		Depth:    rec.DungeonLevel,
		Turn:     rec.Metadata.Turn,
		RunID:    rec.Metadata.RunID,
		Messages: rec.Metadata.MessageLog,
	}, nil
}

// EncodeTiles пишет сетку построчно. Отсутствующая клетка становится null.
func EncodeTiles(g *domain.Grid) [][]*TileRecord {
	rows := make([][]*TileRecord, g.Height())
	for y := range g.Height() {
		row := make([]*TileRecord, g.Width())
		for x := range g.Width() {
			t, ok := g.Get(x, y)
			if !ok {
				continue
			}
			row[x] = &TileRecord{
				Kind:        t.Kind.String(),
				Walkable:    t.Walkable,
				Transparent: t.Transparent,
				Explored:    t.Explored,
			}
		}
		rows[y] = row
	}
	return rows
}

// DecodeTiles восстанавливает сетку. Строки должны быть одной длины.
func DecodeTiles(rows [][]*TileRecord) (*domain.Grid, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	g := domain.NewEmptyGrid(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.Newf(errors.CodeSaveIntegrityFailure, "tile row %d has %d cells, want %d", y, len(row), width)
		}
		for x, tr := range row {
			if tr == nil {
				continue
			}
			kind, ok := enums.ParseTileKind(tr.Kind)
			if !ok {
				return nil, errors.Newf(errors.CodeSaveIntegrityFailure, "tile (%d,%d): unknown kind %q", x, y, tr.Kind)
			}
			// Флаги проходимости выводятся из вида, explored берётся как есть.
			if err := g.Set(x, y, domain.Tile{Kind: kind, Explored: tr.Explored}); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
