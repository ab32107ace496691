package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/infrastructure/storage"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
)

// newTestState собирает небольшой мир, где есть каждый вид компонента,
// отсутствующая клетка и дырки в id.
func newTestState(t *testing.T) storage.State {
	t.Helper()
	grid := domain.NewGrid(6, 4)
	for x := 1; x < 5; x++ {
		require.NoError(t, grid.SetKind(x, 1, enums.TileFloor))
		require.NoError(t, grid.SetKind(x, 2, enums.TileFloor))
	}
	require.NoError(t, grid.SetKind(4, 2, enums.TileStairsDown))
	require.NoError(t, grid.Clear(5, 3))
	grid.MarkExplored(1, 1)
	grid.MarkExplored(2, 1)

	store := ecs.NewStore()
	// Удалённая сущность оставляет свободный слот
	gone := store.CreateEntity()
	store.DeleteEntity(gone)

	player, err := dungeon.CreatePlayer(store, domain.Point{X: 1, Y: 1})
	require.NoError(t, err)
	sword, err := dungeon.SpawnItem(store, dungeon.Sword, nil)
	require.NoError(t, err)
	potion, err := dungeon.SpawnItem(store, dungeon.HealingPotion, nil)
	require.NoError(t, err)

	inv, _ := ecs.Get[*domain.Inventory](store, player)
	inv.Add(sword)
	inv.Add(potion)
	slots, _ := ecs.Get[*domain.EquipmentSlots](store, player)
	slots.Slots[enums.SlotMainHand] = sword

	orc, err := dungeon.SpawnMonster(store, dungeon.Orc, domain.Point{X: 3, Y: 2})
	require.NoError(t, err)
	ai, _ := ecs.Get[*domain.AI](store, orc)
	ai.State = enums.AIStateConfused
	ai.TurnsRemaining = 4

	corpse := store.CreateEntity()
	require.NoError(t, store.Add(corpse, &domain.Position{X: 2, Y: 2}))
	require.NoError(t, store.Add(corpse, &domain.Renderable{Glyph: domain.GlyphCorpse, Order: enums.RenderCorpse}))
	require.NoError(t, store.Add(corpse, &domain.Name{Value: "останки Тролля"}))
	require.NoError(t, store.Add(corpse, &domain.Item{}))
	require.NoError(t, store.Add(corpse, &domain.Corpse{OriginalName: "Тролль"}))

	return storage.State{
		Store:  store,
		Grid:   grid,
		Player: player,
		Depth:  3,
		Turn:   57,
		RunID:  "run-1",
		Messages: []domain.Message{
			{Turn: 56, Text: "Орк в смятении.", Kind: domain.MessageInfo},
		},
	}
}

// assertSameWorld - та самая проверка круга load(save(x)) == x.
func assertSameWorld(t *testing.T, want, got storage.State) {
	t.Helper()
	assert.Equal(t, want.Store.Entities(), got.Store.Entities(), "ids and creation order")
	for _, id := range want.Store.Entities() {
		assert.Equal(t, want.Store.Components(id), got.Store.Components(id), "entity %s", id)
	}

	require.Equal(t, want.Grid.Width(), got.Grid.Width())
	require.Equal(t, want.Grid.Height(), got.Grid.Height())
	for y := range want.Grid.Height() {
		for x := range want.Grid.Width() {
			wt, wok := want.Grid.Get(x, y)
			gt, gok := got.Grid.Get(x, y)
			assert.Equal(t, wok, gok, "presence of (%d,%d)", x, y)
			assert.Equal(t, wt, gt, "tile (%d,%d)", x, y)
		}
	}

	assert.Equal(t, want.Player, got.Player)
	assert.Equal(t, want.Depth, got.Depth)
	assert.Equal(t, want.Turn, got.Turn)
	assert.Equal(t, want.RunID, got.RunID)
	assert.Equal(t, want.Messages, got.Messages)
}

func TestRecord_RoundTripInMemory(t *testing.T) {
	st := newTestState(t)

	rec, err := storage.BuildRecord(st, storage.Settings{AutoSaveInterval: 100, BackupEnabled: true}, "test", time.Unix(1700000000, 0))
	require.NoError(t, err)
	assert.Equal(t, storage.SaveVersion, rec.Version)
	assert.Equal(t, int64(1700000000), rec.Timestamp)
	assert.Nil(t, rec.Tiles[3][5], "absent cell is null")

	got, err := storage.Apply(rec)
	require.NoError(t, err)
	assertSameWorld(t, st, got)
}

func TestRecord_RoundTripThroughEnvelope(t *testing.T) {
	st := newTestState(t)
	sealer := storage.NewSealer("secret")

	rec, err := storage.BuildRecord(st, storage.Settings{}, "test", time.Now())
	require.NoError(t, err)
	data, err := sealer.Seal(rec)
	require.NoError(t, err)

	raw, err := sealer.Open(data)
	require.NoError(t, err)
	decoded, from, err := storage.DecodeRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, storage.SaveVersion, from)

	got, err := storage.Apply(decoded)
	require.NoError(t, err)
	assertSameWorld(t, st, got)

	// Игрок после загрузки ходит тем же id
	pos, ok := ecs.Get[*domain.Position](got.Store, got.Player)
	require.True(t, ok)
	assert.Equal(t, domain.Point{X: 1, Y: 1}, pos.Point())
}

func TestCodec_ComponentShape(t *testing.T) {
	rec, err := storage.EncodeComponent(&domain.Fighter{HP: 7, MaxHP: 10, Power: 5})
	require.NoError(t, err)
	assert.Equal(t, "Fighter", rec.Type)
	assert.Equal(t, storage.ComponentModule, rec.Module)
	assert.Equal(t, 7, rec.Fields["hp"])
}

func TestCodec_RenderableGlyph(t *testing.T) {
	g := types.MakeGlyph(0x3FBF3F, 'o')
	rec, err := storage.EncodeComponent(&domain.Renderable{Glyph: g, Order: enums.RenderActor})
	require.NoError(t, err)
	assert.Equal(t, "o", rec.Fields["char"])
	assert.Equal(t, uint32(0x3FBF3F), rec.Fields["color"])

	c, err := storage.DecodeComponent(rec)
	require.NoError(t, err)
	r, ok := c.(*domain.Renderable)
	require.True(t, ok)
	assert.Equal(t, g, r.Glyph)
	assert.Equal(t, enums.RenderActor, r.Order)
}

func TestCodec_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		rec  storage.ComponentRecord
	}{
		{"unknown type", storage.ComponentRecord{Type: "Quest", Module: storage.ComponentModule}},
		{"unknown module", storage.ComponentRecord{Type: "Name", Module: "ui"}},
		{"missing field", storage.ComponentRecord{Type: "Position", Module: storage.ComponentModule, Fields: storage.Fields{"x": 1}}},
		{"wrong type", storage.ComponentRecord{Type: "Name", Module: storage.ComponentModule, Fields: storage.Fields{"value": 3}}},
		{"bad ai state", storage.ComponentRecord{Type: "AI", Module: storage.ComponentModule, Fields: storage.Fields{"state": "DANCING", "turns_remaining": 0}}},
		{"bad slot", storage.ComponentRecord{Type: "EquipmentSlots", Module: storage.ComponentModule, Fields: storage.Fields{"slots": storage.Fields{"TAIL": "5"}}}},
		{"wide char", storage.ComponentRecord{Type: "Renderable", Module: storage.ComponentModule, Fields: storage.Fields{"char": "Ж", "color": 0xFFFFFF, "render_order": 1}}},
		{"bad color", storage.ComponentRecord{Type: "Renderable", Module: storage.ComponentModule, Fields: storage.Fields{"char": "o", "color": 0x1000000, "render_order": 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.DecodeComponent(tt.rec)
			assert.True(t, errors.IsSaveIntegrityFailure(err), "got %v", err)
		})
	}
}

func TestTiles_NullCellsRoundTrip(t *testing.T) {
	g := domain.NewEmptyGrid(3, 2)
	require.NoError(t, g.SetKind(0, 0, enums.TileFloor))
	require.NoError(t, g.SetKind(2, 1, enums.TileWall))

	rows := storage.EncodeTiles(g)
	require.Len(t, rows, 2)
	assert.NotNil(t, rows[0][0])
	assert.Nil(t, rows[0][1])
	assert.Nil(t, rows[1][0])

	back, err := storage.DecodeTiles(rows)
	require.NoError(t, err)
	_, ok := back.Get(1, 0)
	assert.False(t, ok, "null stays absent, not a default tile")
	kind, ok := back.KindAt(2, 1)
	require.True(t, ok)
	assert.Equal(t, enums.TileWall, kind)
}

func TestTiles_RaggedRowsRejected(t *testing.T) {
	rows := [][]*storage.TileRecord{
		{{Kind: "FLOOR"}, nil},
		{nil},
	}
	_, err := storage.DecodeTiles(rows)
	assert.True(t, errors.IsSaveIntegrityFailure(err))
}

func TestApply_Rejects(t *testing.T) {
	st := newTestState(t)
	rec, err := storage.BuildRecord(st, storage.Settings{}, "", time.Now())
	require.NoError(t, err)

	t.Run("old version", func(t *testing.T) {
		r := *rec
		r.Version = "1.1.0"
		_, err := storage.Apply(&r)
		assert.True(t, errors.IsSaveIntegrityFailure(err))
	})
	t.Run("duplicate id", func(t *testing.T) {
		r := *rec
		r.Entities = append(append([]storage.EntityRecord{}, rec.Entities...), rec.Entities[0])
		_, err := storage.Apply(&r)
		assert.True(t, errors.IsSaveIntegrityFailure(err))
	})
	t.Run("entity index beyond limit", func(t *testing.T) {
		r := *rec
		bogus := rec.Entities[0]
		bogus.ID = types.PackEntityID(0, 4294967295)
		r.Entities = append(append([]storage.EntityRecord{}, rec.Entities...), bogus)
		_, err := storage.Apply(&r)
		assert.True(t, errors.IsSaveIntegrityFailure(err))
	})
	t.Run("missing player", func(t *testing.T) {
		r := *rec
		r.Entities = rec.Entities[1:]
		_, err := storage.Apply(&r)
		assert.True(t, errors.IsSaveIntegrityFailure(err))
	})
}
