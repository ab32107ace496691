package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

//go:generate mockgen -destination=mocks/backend_mock.go -package=storagemocks -source=backend.go

// Backend - плоское хранилище именованных блобов. Ключи имеют вид
// файловых путей ("save_0.sav", "backup/save_0.1.bak").
type Backend interface {
	// Read возвращает NOT_FOUND, если ключа нет.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write заменяет значение целиком: читатель видит либо старое, либо новое.
	Write(ctx context.Context, key string, data []byte) error
	// Delete отсутствующего ключа — не ошибка.
	Delete(ctx context.Context, key string) error
	// List - ключи с префиксом, в любом порядке.
	List(ctx context.Context, prefix string) ([]Entry, error)
	Close() error
}

// Entry - описание хранимого блоба.
type Entry struct {
	Key      string
	Size     int64
	Modified time.Time
}

const (
	SaveExt   = ".sav"
	SumExt    = ".sum"
	BackupExt = ".bak"
	BackupDir = "backup"
)

// SlotName - имя слота в ключах: -1 -> "auto".
func SlotName(slot int) string {
	if slot == -1 {
		return "auto"
	}
	return strconv.Itoa(slot)
}

// ParseSlotName - обратное к SlotName.
func ParseSlotName(name string) (int, bool) {
	if name == "auto" {
		return -1, true
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func saveKey(slot int) string { return "save_" + SlotName(slot) + SaveExt }
func sumKey(slot int) string  { return "save_" + SlotName(slot) + SumExt }

func backupKey(slot, n int) string {
	return fmt.Sprintf("%s/save_%s.%d%s", BackupDir, SlotName(slot), n, BackupExt)
}

func backupSumKey(slot, n int) string {
	return fmt.Sprintf("%s/save_%s.%d%s", BackupDir, SlotName(slot), n, SumExt)
}

// parseSaveKey разбирает "save_<slot>.sav".
func parseSaveKey(key string) (int, bool) {
	name, ok := strings.CutPrefix(key, "save_")
	if !ok {
		return 0, false
	}
	name, ok = strings.CutSuffix(name, SaveExt)
	if !ok {
		return 0, false
	}
	return ParseSlotName(name)
}

// parseBackupKey разбирает "backup/save_<slot>.<n>.bak".
func parseBackupKey(key string) (slot, n int, ok bool) {
	name, ok := strings.CutPrefix(key, BackupDir+"/save_")
	if !ok {
		return 0, 0, false
	}
	name, ok = strings.CutSuffix(name, BackupExt)
	if !ok {
		return 0, 0, false
	}
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return 0, 0, false
	}
	slot, ok = ParseSlotName(name[:dot])
	if !ok {
		return 0, 0, false
	}
	n, err := strconv.Atoi(name[dot+1:])
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return slot, n, true
}
