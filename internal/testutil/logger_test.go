package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCaptureLogger(t *testing.T) {
	logger, logs := NewCaptureLogger(slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("linted", "files", 3)
	logger.Warn("slow")

	assert.False(t, logs.Contains("hidden"))
	assert.True(t, logs.Contains("msg=linted files=3"))
	assert.Len(t, logs.Lines(), 2)
}

func TestLogCapture_Empty(t *testing.T) {
	_, logs := NewCaptureLogger(slog.LevelDebug)
	assert.Empty(t, logs.Lines())
	assert.Empty(t, logs.String())
}
