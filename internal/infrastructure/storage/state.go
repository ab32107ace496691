// Package storage сохраняет и восстанавливает состояние игры: хранилище
// сущностей, сетку клеток и служебные поля хода.
//
// Запись проходит цепочку: модель -> JSON -> gzip -> шифрование -> слот
// бэкенда, рядом с ним кладётся контрольная сумма. Перед перезаписью слот
// уходит в цепочку резервных копий; при чтении повреждённый слот заменяется
// самой свежей целой копией.
package storage

import (
	"github.com/yuru-sha/roguelike-sub000/internal/core/types"
	"github.com/yuru-sha/roguelike-sub000/internal/domain"
	"github.com/yuru-sha/roguelike-sub000/internal/ecs"
)

// State - то, что сохраняется на границе хода.
type State struct {
	Store    *ecs.Store
	Grid     *domain.Grid
	Player   types.EntityID
	Depth    int
	Turn     int
	RunID    string
	Messages []domain.Message
}
