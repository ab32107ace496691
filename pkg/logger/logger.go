package logger

import (
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для бинарника.
// Пакеты ядра его не используют: им передаётся logrus.FieldLogger.
var Log *logrus.Logger

// Config описывает уровень и формат вывода.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// ConfigFromEnv читает LOG_LEVEL и LOG_FORMAT.
func ConfigFromEnv() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{Level: "info", Format: "text"}
	}
	return cfg
}

// New собирает логгер по конфигу. Неизвестный уровень даёт info.
func New(cfg Config) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(cfg.Format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	l.SetOutput(os.Stdout)
	return l
}

// Discard возвращает логгер, который ничего не пишет. Удобен в тестах.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init инициализирует глобальный логгер.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	Log = New(ConfigFromEnv())
}
