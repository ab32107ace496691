package dungeon

import (
	"math/rand"

	"github.com/yuru-sha/roguelike-sub000/internal/core/types/enums"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// DepthWeight - вес, действующий начиная с глубины FromLevel.
type DepthWeight struct {
	FromLevel int
	Weight    int
}

// ChanceEntry - строка таблицы шансов. MaxLevel == 0 — без верхней границы.
type ChanceEntry struct {
	Key      string
	MinLevel int
	MaxLevel int
	Weights  []DepthWeight
}

// WeightAt - вес на глубине depth: последний шаг с FromLevel <= depth.
func (e ChanceEntry) WeightAt(depth int) int {
	if depth < e.MinLevel || (e.MaxLevel > 0 && depth > e.MaxLevel) {
		return 0
	}
	w := 0
	for _, step := range e.Weights {
		if depth >= step.FromLevel {
			w = step.Weight
		}
	}
	return w
}

// ChanceTable - взвешенный выбор. Порядок строк фиксирован ради воспроизводимости.
type ChanceTable []ChanceEntry

// Choose выбирает ключ; false, если на этой глубине нечего выбирать.
func (t ChanceTable) Choose(depth int, rng *rand.Rand) (string, bool) {
	total := 0
	for _, e := range t {
		total += e.WeightAt(depth)
	}
	if total <= 0 {
		return "", false
	}
	roll := rng.Intn(total)
	for _, e := range t {
		w := e.WeightAt(depth)
		if roll < w {
			return e.Key, true
		}
		roll -= w
	}
	return "", false
}

var MonsterChances = ChanceTable{
	{Key: Orc.Key, MinLevel: 1, MaxLevel: 6, Weights: []DepthWeight{{1, 80}}},
	{Key: Troll.Key, MinLevel: 3, Weights: []DepthWeight{{3, 20}, {5, 30}, {7, 60}}},
}

var ItemChances = ChanceTable{
	{Key: HealingPotion.Key, MinLevel: 1, Weights: []DepthWeight{{1, 70}}},
	{Key: LightningScroll.Key, MinLevel: 4, Weights: []DepthWeight{{4, 25}}},
	{Key: FireballScroll.Key, MinLevel: 6, Weights: []DepthWeight{{6, 25}}},
	{Key: ConfusionScroll.Key, MinLevel: 2, Weights: []DepthWeight{{2, 10}}},
	{Key: ParalyzeScroll.Key, MinLevel: 3, Weights: []DepthWeight{{3, 10}}},
	{Key: TeleportScroll.Key, MinLevel: 1, Weights: []DepthWeight{{1, 10}}},
	{Key: IdentifyScroll.Key, MinLevel: 1, Weights: []DepthWeight{{1, 5}}},
	{Key: Sword.Key, MinLevel: 4, Weights: []DepthWeight{{4, 5}}},
	{Key: Shield.Key, MinLevel: 8, Weights: []DepthWeight{{8, 15}}},
	{Key: LeatherArmor.Key, MinLevel: 1, Weights: []DepthWeight{{1, 15}}},
}

// Populator расставляет монстров и предметы по комнатам.
type Populator struct {
	MaxMonstersPerRoom int
	MaxItemsPerRoom    int
	Monsters           ChanceTable
	Items              ChanceTable
}

func DefaultPopulator() Populator {
	return Populator{
		MaxMonstersPerRoom: domain.MaxMonstersPerRoom,
		MaxItemsPerRoom:    domain.MaxItemsPerRoom,
		Monsters:           MonsterChances,
		Items:              ItemChances,
	}
}

// PopulateResult - сколько сущностей создано.
type PopulateResult struct {
	Monsters int
	Items    int
}

// Spawn - одна запланированная сущность: монстр или предмет на клетке.
type Spawn struct {
	Monster *MonsterTemplate
	Item    *ItemTemplate
	At      domain.Point
}

// Plan выбирает, кого и куда поставить в rooms[1:], ничего не создавая.
// occupied - клетки, уже занятые сущностями; план их не использует.
// Неизвестный ключ в таблице шансов - ошибка до любых изменений.
func (p Populator) Plan(level *Level, occupied map[domain.Point]bool, rng *rand.Rand) ([]Spawn, error) {
	taken := make(map[domain.Point]bool, len(occupied))
	for pt := range occupied {
		taken[pt] = true
	}

	var plan []Spawn
	for _, room := range level.Rooms[1:] {
		for range rng.Intn(p.MaxMonstersPerRoom + 1) {
			at, ok := freeSpot(level.Grid, room, taken, rng)
			if !ok {
				break
			}
			key, ok := p.Monsters.Choose(level.Depth, rng)
			if !ok {
				break
			}
			t, ok := MonsterTemplates[key]
			if !ok {
				return nil, errors.NotFoundf("monster template %q", key)
			}
			plan = append(plan, Spawn{Monster: &t, At: at})
			taken[at] = true
		}

		for range rng.Intn(p.MaxItemsPerRoom + 1) {
			at, ok := freeSpot(level.Grid, room, taken, rng)
			if !ok {
				break
			}
			key, ok := p.Items.Choose(level.Depth, rng)
			if !ok {
				break
			}
			t, ok := ItemTemplates[key]
			if !ok {
				return nil, errors.NotFoundf("item template %q", key)
			}
			plan = append(plan, Spawn{Item: &t, At: at})
			taken[at] = true
		}
	}
	return plan, nil
}

// Place создаёт сущности по плану.
func Place(store *ecs.Store, plan []Spawn) (PopulateResult, error) {
	var res PopulateResult
	for _, s := range plan {
		switch {
		case s.Monster != nil:
			if _, err := SpawnMonster(store, *s.Monster, s.At); err != nil {
				return res, err
			}
			res.Monsters++
		case s.Item != nil:
			at := s.At
			if _, err := SpawnItem(store, *s.Item, &at); err != nil {
				return res, err
			}
			res.Items++
		}
	}
	return res, nil
}

// Populate заполняет rooms[1:]; первая комната, где стоит игрок, не трогается.
func (p Populator) Populate(store *ecs.Store, level *Level, rng *rand.Rand) (PopulateResult, error) {
	occupied := make(map[domain.Point]bool)
	for _, pos := range ecs.Query1[*domain.Position](store) {
		occupied[pos.Point()] = true
	}
	plan, err := p.Plan(level, occupied, rng)
	if err != nil {
		return PopulateResult{}, err
	}
	return Place(store, plan)
}

// freeSpot ищет свободную клетку пола внутри комнаты (несколько попыток).
func freeSpot(g *domain.Grid, room Rect, occupied map[domain.Point]bool, rng *rand.Rand) (domain.Point, bool) {
	const attempts = 20
	for range attempts {
		p := domain.Point{
			X: randRange(rng, room.X1()+1, room.X2()-1),
			Y: randRange(rng, room.Y1()+1, room.Y2()-1),
		}
		if kind, ok := g.KindAt(p.X, p.Y); ok && kind == enums.TileFloor && !occupied[p] {
			return p, true
		}
	}
	return domain.Point{}, false
}
