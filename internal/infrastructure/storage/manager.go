package storage

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

// DefaultMaxBackups - сколько резервных копий слота хранится.
const DefaultMaxBackups = 5

// Options - зависимости Manager.
type Options struct {
	Backend    Backend
	Passphrase string
	// MaxBackups 0 выключает резервные копии.
	MaxBackups int
	Settings   Settings
	// WrittenBy попадает в metadata.written_by (обычно версия сборки).
	WrittenBy string
	Logger    logrus.FieldLogger
	Now       func() time.Time
}

// Manager - сохранение и загрузка партий поверх Backend.
// Вызовы синхронны; одновременная работа с одним слотом не поддерживается.
type Manager struct {
	backend    Backend
	sealer     *Sealer
	maxBackups int
	settings   Settings
	writtenBy  string
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewManager(opts Options) (*Manager, error) {
	if opts.Backend == nil {
		return nil, errors.InvalidArgument("backend cannot be nil")
	}
	if opts.MaxBackups < 0 {
		return nil, errors.InvalidArgumentf("max backups %d < 0", opts.MaxBackups)
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		backend:    opts.Backend,
		sealer:     NewSealer(opts.Passphrase),
		maxBackups: opts.MaxBackups,
		settings:   opts.Settings,
		writtenBy:  opts.WrittenBy,
		log:        log.WithField("component", "storage"),
		now:        now,
	}, nil
}

// Config - выбор и параметры бэкенда для Open.
type Config struct {
	Backend          string // file | redis | sqlite
	Dir              string
	RedisAddr        string
	SQLitePath       string
	Passphrase       string
	MaxBackups       int
	AutoSaveInterval int
	WrittenBy        string
}

// Open собирает Manager с бэкендом из конфигурации.
func Open(ctx context.Context, cfg Config, log logrus.FieldLogger) (*Manager, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Backend {
	case "", "file":
		backend, err = NewFileBackend(cfg.Dir)
	case "sqlite":
		backend, err = OpenSQLite(cfg.SQLitePath)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, ioFailure(err, "connect to redis "+cfg.RedisAddr)
		}
		backend, err = NewRedisBackend(&RedisConfig{Client: client})
	default:
		return nil, errors.InvalidArgumentf("unknown save backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	return NewManager(Options{
		Backend:    backend,
		Passphrase: cfg.Passphrase,
		MaxBackups: cfg.MaxBackups,
		Settings:   Settings{AutoSaveInterval: cfg.AutoSaveInterval, BackupEnabled: cfg.MaxBackups > 0},
		WrittenBy:  cfg.WrittenBy,
		Logger:     log,
	})
}

func (m *Manager) Close() error { return m.backend.Close() }

func validSlot(slot int) error {
	if slot < -1 {
		return errors.InvalidArgumentf("slot %d < -1", slot)
	}
	return nil
}

// Save пишет состояние в слот. Прежний файл слота сначала уходит в
// резервную копию №1, поэтому сбой записи не губит последнее сохранение.
func (m *Manager) Save(ctx context.Context, st State, slot int) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	log := m.log.WithFields(logrus.Fields{"slot": SlotName(slot), "turn": st.Turn})

	// 1. Кодируем до любых изменений на диске
	rec, err := BuildRecord(st, m.settings, m.writtenBy, m.now())
	if err != nil {
		return err
	}
	data, err := m.sealer.Seal(rec)
	if err != nil {
		return err
	}

	// 2. Ротация резервных копий
	if err := m.rotate(ctx, slot); err != nil {
		log.WithError(err).Error("Backup rotation failed")
		return err
	}

	// 3. Новый файл и контрольная сумма
	if err := m.backend.Write(ctx, saveKey(slot), data); err != nil {
		log.WithError(err).Error("Save failed")
		return err
	}
	if err := m.backend.Write(ctx, sumKey(slot), []byte(Checksum(data))); err != nil {
		log.WithError(err).Error("Checksum write failed")
		return err
	}

	log.WithField("bytes", len(data)).Debug("Game saved")
	return nil
}

// rotate сдвигает копии n -> n+1 (самая старая перезаписывается) и кладёт
// текущий файл слота в копию №1.
func (m *Manager) rotate(ctx context.Context, slot int) error {
	if m.maxBackups == 0 {
		return nil
	}
	current, err := m.backend.Read(ctx, saveKey(slot))
	if errors.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	currentSum, err := m.readOptional(ctx, sumKey(slot))
	if err != nil {
		return err
	}

	for n := m.maxBackups - 1; n >= 1; n-- {
		if err := m.moveBackup(ctx, slot, n, n+1); err != nil {
			return err
		}
	}
	if err := m.backend.Write(ctx, backupKey(slot, 1), current); err != nil {
		return err
	}
	if currentSum != nil {
		if err := m.backend.Write(ctx, backupSumKey(slot, 1), currentSum); err != nil {
			return err
		}
	}
	return m.pruneBeyond(ctx, slot)
}

func (m *Manager) moveBackup(ctx context.Context, slot, from, to int) error {
	data, err := m.backend.Read(ctx, backupKey(slot, from))
	if errors.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	sum, err := m.readOptional(ctx, backupSumKey(slot, from))
	if err != nil {
		return err
	}

	if err := m.backend.Write(ctx, backupKey(slot, to), data); err != nil {
		return err
	}
	if sum != nil {
		if err := m.backend.Write(ctx, backupSumKey(slot, to), sum); err != nil {
			return err
		}
	} else if err := m.backend.Delete(ctx, backupSumKey(slot, to)); err != nil {
		return err
	}
	if err := m.backend.Delete(ctx, backupKey(slot, from)); err != nil {
		return err
	}
	return m.backend.Delete(ctx, backupSumKey(slot, from))
}

// pruneBeyond удаляет копии с номером больше maxBackups.
func (m *Manager) pruneBeyond(ctx context.Context, slot int) error {
	backups, err := m.ListBackups(ctx, slot)
	if err != nil {
		return err
	}
	for _, b := range backups {
		if b.Number > m.maxBackups {
			if err := m.deleteBackup(ctx, slot, b.Number); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Manager) readOptional(ctx context.Context, key string) ([]byte, error) {
	data, err := m.backend.Read(ctx, key)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	return data, err
}

// LoadResult - загруженная партия и то, откуда она взялась.
type LoadResult struct {
	State  State
	Record *SaveRecord
	// FromVersion - версия записи до миграций.
	FromVersion string
	// RecoveredFromBackup - основной файл повреждён, взята копия Backup.
	RecoveredFromBackup bool
	Backup              int
}

func (r *LoadResult) Migrated() bool { return r.FromVersion != SaveVersion }

// Load читает слот. Повреждённый файл заменяется самой свежей целой копией;
// ошибка SAVE_INTEGRITY_FAILURE означает, что целых копий не осталось.
func (m *Manager) Load(ctx context.Context, slot int) (*LoadResult, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}
	log := m.log.WithField("slot", SlotName(slot))

	res, err := m.decodeKeys(ctx, saveKey(slot), sumKey(slot))
	if err == nil {
		if res.Migrated() {
			log.WithField("from", res.FromVersion).Info("Save migrated")
		}
		return res, nil
	}
	primaryErr := err
	switch {
	case errors.IsNotFound(err):
		// Основного файла нет: копии всё равно проверяем
	case errors.IsSaveIntegrityFailure(err):
		log.WithError(err).Warn("Save is corrupt, trying backups")
	default:
		return nil, err
	}

	backups, err := m.ListBackups(ctx, slot)
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 && errors.IsNotFound(primaryErr) {
		return nil, primaryErr
	}
	for _, b := range backups {
		res, err := m.decodeKeys(ctx, backupKey(slot, b.Number), backupSumKey(slot, b.Number))
		if err != nil {
			if !errors.IsSaveIntegrityFailure(err) && !errors.IsNotFound(err) {
				return nil, err
			}
			log.WithError(err).WithField("backup", b.Number).Warn("Backup is corrupt")
			continue
		}
		res.RecoveredFromBackup = true
		res.Backup = b.Number
		log.WithField("backup", b.Number).Warn("Save recovered from backup")
		return res, nil
	}

	log.WithError(primaryErr).Error("Save is unrecoverable")
	return nil, errors.WrapWithCodef(primaryErr, errors.CodeSaveIntegrityFailure,
		"slot %s is unrecoverable: %d backups tried", SlotName(slot), len(backups))
}

// decodeKeys - полная проверка одного файла: сумма, расшифровка, миграции,
// сборка состояния.
func (m *Manager) decodeKeys(ctx context.Context, dataKey, sumKey string) (*LoadResult, error) {
	data, err := m.backend.Read(ctx, dataKey)
	if err != nil {
		return nil, err
	}
	sum, err := m.backend.Read(ctx, sumKey)
	if errors.IsNotFound(err) {
		return nil, errors.Newf(errors.CodeSaveIntegrityFailure, "%s has no checksum", dataKey)
	}
	if err != nil {
		return nil, err
	}
	if err := VerifyChecksum(data, sum); err != nil {
		return nil, err
	}

	raw, err := m.sealer.Open(data)
	if err != nil {
		return nil, err
	}
	rec, from, err := DecodeRecord(raw)
	if err != nil {
		return nil, err
	}
	st, err := Apply(rec)
	if err != nil {
		return nil, err
	}
	return &LoadResult{State: st, Record: rec, FromVersion: from}, nil
}

// Verify проверяет слот целиком, ничего не меняя.
func (m *Manager) Verify(ctx context.Context, slot int) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	_, err := m.decodeKeys(ctx, saveKey(slot), sumKey(slot))
	return err
}

// SaveInfo - слот в списке сохранений.
type SaveInfo struct {
	Slot     int
	Name     string
	Size     int64
	Modified time.Time
	Backups  int
}

// ListSaves перечисляет занятые слоты по возрастанию номера ("auto" первым).
func (m *Manager) ListSaves(ctx context.Context) ([]SaveInfo, error) {
	entries, err := m.backend.List(ctx, "save_")
	if err != nil {
		return nil, err
	}
	var out []SaveInfo
	for _, e := range entries {
		slot, ok := parseSaveKey(e.Key)
		if !ok {
			continue
		}
		backups, err := m.ListBackups(ctx, slot)
		if err != nil {
			return nil, err
		}
		out = append(out, SaveInfo{
			Slot:     slot,
			Name:     SlotName(slot),
			Size:     e.Size,
			Modified: e.Modified,
			Backups:  len(backups),
		})
	}
	slices.SortFunc(out, func(a, b SaveInfo) int { return a.Slot - b.Slot })
	return out, nil
}

// DeleteSave удаляет слот вместе с копиями.
func (m *Manager) DeleteSave(ctx context.Context, slot int) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	backups, err := m.ListBackups(ctx, slot)
	if err != nil {
		return err
	}
	if _, err := m.backend.Read(ctx, saveKey(slot)); errors.IsNotFound(err) && len(backups) == 0 {
		return errors.NotFoundf("slot %s is empty", SlotName(slot))
	}

	for _, key := range []string{saveKey(slot), sumKey(slot)} {
		if err := m.backend.Delete(ctx, key); err != nil {
			return err
		}
	}
	for _, b := range backups {
		if err := m.deleteBackup(ctx, slot, b.Number); err != nil {
			return err
		}
	}
	m.log.WithField("slot", SlotName(slot)).Info("Save deleted")
	return nil
}

// BackupInfo - одна резервная копия; Number 1 — самая свежая.
type BackupInfo struct {
	Number   int
	Size     int64
	Modified time.Time
}

// ListBackups перечисляет копии слота от свежей к старой.
func (m *Manager) ListBackups(ctx context.Context, slot int) ([]BackupInfo, error) {
	entries, err := m.backend.List(ctx, BackupDir+"/save_"+SlotName(slot)+".")
	if err != nil {
		return nil, err
	}
	var out []BackupInfo
	for _, e := range entries {
		s, n, ok := parseBackupKey(e.Key)
		if !ok || s != slot {
			continue
		}
		out = append(out, BackupInfo{Number: n, Size: e.Size, Modified: e.Modified})
	}
	slices.SortFunc(out, func(a, b BackupInfo) int { return a.Number - b.Number })
	return out, nil
}

// RestoreBackup заменяет слот копией n. Копия сначала проверяется целиком.
func (m *Manager) RestoreBackup(ctx context.Context, slot, n int) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	if _, err := m.decodeKeys(ctx, backupKey(slot, n), backupSumKey(slot, n)); err != nil {
		return err
	}
	data, err := m.backend.Read(ctx, backupKey(slot, n))
	if err != nil {
		return err
	}
	sum, err := m.backend.Read(ctx, backupSumKey(slot, n))
	if err != nil {
		return err
	}
	if err := m.backend.Write(ctx, saveKey(slot), data); err != nil {
		return err
	}
	if err := m.backend.Write(ctx, sumKey(slot), sum); err != nil {
		return err
	}
	m.log.WithFields(logrus.Fields{"slot": SlotName(slot), "backup": n}).Info("Backup restored")
	return nil
}

// Repair восстанавливает повреждённый слот из самой свежей целой копии.
// Возвращает номер копии; целый слот не трогает и возвращает 0.
func (m *Manager) Repair(ctx context.Context, slot int) (int, error) {
	verr := m.Verify(ctx, slot)
	if verr == nil {
		return 0, nil
	}
	if !errors.IsSaveIntegrityFailure(verr) && !errors.IsNotFound(verr) {
		return 0, verr
	}
	backups, err := m.ListBackups(ctx, slot)
	if err != nil {
		return 0, err
	}
	for _, b := range backups {
		if err := m.RestoreBackup(ctx, slot, b.Number); err == nil {
			return b.Number, nil
		}
	}
	return 0, errors.WrapWithCodef(verr, errors.CodeSaveIntegrityFailure, "no intact backup for slot %s", SlotName(slot))
}

// PruneBackups удаляет копии старше olderThan. Возвращает число удалённых.
func (m *Manager) PruneBackups(ctx context.Context, olderThan time.Duration) (int, error) {
	entries, err := m.backend.List(ctx, BackupDir+"/")
	if err != nil {
		return 0, err
	}
	cutoff := m.now().Add(-olderThan)
	removed := 0
	for _, e := range entries {
		if !strings.HasSuffix(e.Key, BackupExt) || !e.Modified.Before(cutoff) {
			continue
		}
		slot, n, ok := parseBackupKey(e.Key)
		if !ok {
			continue
		}
		if err := m.deleteBackup(ctx, slot, n); err != nil {
			return removed, err
		}
		removed++
	}
	if removed > 0 {
		m.log.WithField("removed", removed).Info("Old backups pruned")
	}
	return removed, nil
}

func (m *Manager) deleteBackup(ctx context.Context, slot, n int) error {
	if err := m.backend.Delete(ctx, backupKey(slot, n)); err != nil {
		return err
	}
	return m.backend.Delete(ctx, backupSumKey(slot, n))
}
