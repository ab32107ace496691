package engine

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/infrastructure/storage"
	"github.com/yuru-sha/roguelike-sub000/pkg/dungeon"
)

// AutoSaveSlot - слот автосохранения.
const AutoSaveSlot = -1

type Config struct {
	// Seed 0 — взять текущее время.
	Seed int64 `env:"SEED"`

	MapWidth           int `env:"MAP_WIDTH" envDefault:"80"`
	MapHeight          int `env:"MAP_HEIGHT" envDefault:"43"`
	RoomMinSize        int `env:"ROOM_MIN_SIZE" envDefault:"6"`
	RoomMaxSize        int `env:"ROOM_MAX_SIZE" envDefault:"10"`
	MaxRooms           int `env:"MAX_ROOMS" envDefault:"30"`
	TorchRadius        int `env:"TORCH_RADIUS" envDefault:"10"`
	MaxMonstersPerRoom int `env:"MAX_MONSTERS_PER_ROOM" envDefault:"3"`
	MaxItemsPerRoom    int `env:"MAX_ITEMS_PER_ROOM" envDefault:"2"`

	SaveDir          string `env:"SAVE_DIR" envDefault:"saves"`
	SaveBackend      string `env:"SAVE_BACKEND" envDefault:"file"`
	RedisAddr        string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SQLitePath       string `env:"SQLITE_PATH" envDefault:"saves/dungeon.db"`
	SavePassphrase   string `env:"SAVE_PASSPHRASE"`
	MaxBackupFiles   int    `env:"MAX_BACKUP_FILES" envDefault:"5"`
	AutoSaveInterval int    `env:"AUTO_SAVE_INTERVAL" envDefault:"100"`

	// Cheats включает команды ADMIN_*.
	Cheats bool `env:"ENABLE_CHEATS" envDefault:"false"`
}

// NewConfig возвращает конфигурацию по умолчанию, не читая окружение.
func NewConfig() Config {
	var cfg Config
	// Пустое окружение: остаются только envDefault.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	cfg.Seed = time.Now().UnixNano()
	return cfg
}

// LoadConfig читает конфигурацию из переменных окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse environment")
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if err := c.DungeonConfig().Validate(); err != nil {
		return err
	}
	switch {
	case c.TorchRadius < 0:
		return errors.InvalidArgumentf("torch radius %d < 0", c.TorchRadius)
	case c.MaxMonstersPerRoom < 0 || c.MaxItemsPerRoom < 0:
		return errors.InvalidArgumentf("negative population limits")
	case c.MaxBackupFiles < 0:
		return errors.InvalidArgumentf("max backup files %d < 0", c.MaxBackupFiles)
	case c.AutoSaveInterval < 0:
		return errors.InvalidArgumentf("auto save interval %d < 0", c.AutoSaveInterval)
	}
	switch c.SaveBackend {
	case "file", "redis", "sqlite":
	default:
		return errors.InvalidArgumentf("unknown save backend %q", c.SaveBackend)
	}
	return nil
}

// DungeonConfig - параметры генератора.
func (c Config) DungeonConfig() dungeon.Config {
	cfg := dungeon.DefaultConfig()
	cfg.Width = c.MapWidth
	cfg.Height = c.MapHeight
	cfg.RoomMinSize = c.RoomMinSize
	cfg.RoomMaxSize = c.RoomMaxSize
	cfg.MaxRooms = c.MaxRooms
	return cfg
}

func (c Config) Populator() dungeon.Populator {
	p := dungeon.DefaultPopulator()
	p.MaxMonstersPerRoom = c.MaxMonstersPerRoom
	p.MaxItemsPerRoom = c.MaxItemsPerRoom
	return p
}

// StorageConfig - параметры хранилища сохранений.
func (c Config) StorageConfig(writtenBy string) storage.Config {
	return storage.Config{
		Backend:          c.SaveBackend,
		Dir:              c.SaveDir,
		RedisAddr:        c.RedisAddr,
		SQLitePath:       c.SQLitePath,
		Passphrase:       c.SavePassphrase,
		MaxBackups:       c.MaxBackupFiles,
		AutoSaveInterval: c.AutoSaveInterval,
		WrittenBy:        writtenBy,
	}
}
