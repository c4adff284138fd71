package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		dev       string
		wantLevel string
		wantDev   bool
	}{
		{name: "defaults", wantLevel: "info"},
		{name: "dev defaults to debug", dev: "1", wantLevel: "debug", wantDev: true},
		{name: "dev true", dev: "true", level: "warn", wantLevel: "warn", wantDev: true},
		{name: "explicit level", level: "error", wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			t.Setenv("LOG_DEV", tt.dev)

			cfg := ConfigFromEnv()
			assert.Equal(t, tt.wantLevel, cfg.Level)
			assert.Equal(t, tt.wantDev, cfg.Dev)
		})
	}
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, levelFromString("debug"))
	assert.Equal(t, zapcore.WarnLevel, levelFromString("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, levelFromString("error"))
	assert.Equal(t, zapcore.InfoLevel, levelFromString("bogus"))
}

func TestInit_ReplacesGlobals(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	l, err := Init(Config{Level: "warn"})
	require.NoError(t, err)
	require.NotNil(t, l)

	assert.Same(t, l, zap.L())
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}
