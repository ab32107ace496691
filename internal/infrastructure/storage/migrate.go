package storage

import (
	"fmt"
	"sort"

	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// migration переводит сырую запись на следующую версию.
type migration struct {
	next      string
	transform func(raw map[string]any) error
}

// migrations - цепочка версий: version -> (next, transform).
var migrations = map[string]migration{
	"0.9.0": {next: "1.0.0", transform: migrateAddSettings},
	"1.0.0": {next: "1.1.0", transform: migrateEntityList},
	"1.1.0": {next: "1.2.0", transform: migrateAddMetadata},
}

// Migrate доводит запись до SaveVersion. Возвращает исходную версию.
func Migrate(raw map[string]any) (string, error) {
	from, _ := raw["version"].(string)
	if from == "" {
		return "", errors.Newf(errors.CodeSaveIntegrityFailure, "record has no version")
	}

	version := from
	for steps := 0; version != SaveVersion; steps++ {
		m, ok := migrations[version]
		if !ok || steps > len(migrations) {
			return from, errors.Newf(errors.CodeSaveIntegrityFailure, "no migration path from version %s", version)
		}
		if err := m.transform(raw); err != nil {
			return from, errors.WrapWithCodef(err, errors.CodeSaveIntegrityFailure, "migrate %s -> %s", version, m.next)
		}
		version = m.next
		raw["version"] = version
	}
	return from, nil
}

// 0.9.0 -> 1.0.0: появились настройки партии.
func migrateAddSettings(raw map[string]any) error {
	gs, _ := raw["game_state"].(map[string]any)
	if gs == nil {
		gs = map[string]any{}
		raw["game_state"] = gs
	}
	settings, _ := gs["settings"].(map[string]any)
	if settings == nil {
		settings = map[string]any{}
		gs["settings"] = settings
	}
	if _, ok := settings["auto_save_interval"]; !ok {
		settings["auto_save_interval"] = 100
	}
	if _, ok := settings["backup_enabled"]; !ok {
		settings["backup_enabled"] = true
	}
	return nil
}

// 1.0.0 -> 1.1.0: сущности были картой {id: {Type: fields}}, стали
// упорядоченным списком. Старый формат порядок не хранил: сортируем по id.
func migrateEntityList(raw map[string]any) error {
	old, ok := raw["entities"].(map[string]any)
	if !ok {
		if _, isList := raw["entities"].([]any); isList {
			return nil
		}
		return fmt.Errorf("entities is %T", raw["entities"])
	}

	ids := make([]string, 0, len(old))
	for id := range old {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})

	list := make([]any, 0, len(old))
	for _, id := range ids {
		comps, ok := old[id].(map[string]any)
		if !ok {
			return fmt.Errorf("entity %s is %T", id, old[id])
		}
		tags := make([]string, 0, len(comps))
		for t := range comps {
			tags = append(tags, t)
		}
		sort.Strings(tags)

		records := make([]any, 0, len(comps))
		for _, t := range tags {
			records = append(records, map[string]any{
				"type":   t,
				"module": ComponentModule,
				"fields": comps[t],
			})
		}
		list = append(list, map[string]any{"id": id, "components": records})
	}
	raw["entities"] = list
	return nil
}

// 1.1.0 -> 1.2.0: служебные данные партии переехали в metadata.
func migrateAddMetadata(raw map[string]any) error {
	if _, ok := raw["metadata"]; ok {
		return nil
	}
	meta := map[string]any{
		"run_id":      "",
		"written_by":  "",
		"turn":        0,
		"message_log": []any{},
	}
	if gs, ok := raw["game_state"].(map[string]any); ok {
		if turn, ok := gs["turn"]; ok {
			meta["turn"] = turn
			delete(gs, "turn")
		}
	}
	raw["metadata"] = meta
	return nil
}
