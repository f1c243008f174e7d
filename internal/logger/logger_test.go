package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"Default is info", "", zapcore.InfoLevel, zapcore.DebugLevel},
		{"Debug", "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"Warn", "warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"Error", "error", zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level, "console")
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.muted))
		})
	}
}

func TestNewFormats(t *testing.T) {
	assert.NotNil(t, New("info", "json"))
	assert.NotNil(t, New("info", "console"))
}
