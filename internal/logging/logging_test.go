package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	cases := []struct {
		mode, level string
		enabled     zapcore.Level
		disabled    zapcore.Level
	}{
		{"prod", "", zapcore.InfoLevel, zapcore.DebugLevel},
		{"dev", "", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"development", "warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"Production", "error", zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tc := range cases {
		t.Run(tc.mode+"/"+tc.level, func(t *testing.T) {
			log, err := New(tc.mode, tc.level)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tc.enabled))
			assert.False(t, log.Core().Enabled(tc.disabled))
		})
	}
}

func TestNewOff(t *testing.T) {
	log, err := New("off", "debug")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.FatalLevel))
}

func TestNewRejectsUnknown(t *testing.T) {
	_, err := New("loud", "")
	assert.ErrorContains(t, err, "unknown log mode")

	_, err = New("dev", "shouty")
	assert.ErrorContains(t, err, "log level")
}
