package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"defaults", Config{Level: "info"}, logrus.InfoLevel, false},
		{"debug json", Config{Level: "debug", Format: "JSON"}, logrus.DebugLevel, true},
		{"bad level", Config{Level: "loud"}, logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.cfg)
			assert.Equal(t, tt.wantLevel, l.GetLevel())
			_, isJSON := l.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	cfg := ConfigFromEnv()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
}

func TestInit(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	Init()
	assert.NotNil(t, Log)
	assert.Equal(t, logrus.ErrorLevel, Log.GetLevel())
}
