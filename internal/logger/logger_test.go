package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWithoutOutputsIsNop(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	l.Info("test", "dropped", nil)
	assert.NoError(t, l.Sync())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "translitc.log")

	l, err := New(Options{FilePath: path, Level: "debug"})
	require.NoError(t, err)
	l.Info("session", "message appended", map[string]interface{}{"role": "bot"})
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"module":"session"`)
	assert.Contains(t, string(data), `"message":"message appended"`)
}

func TestErrorDetailsAreLifted(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewWithCore(core)

	l.Error("correction", "submission failed", map[string]interface{}{"error": errors.New("boom")})

	entries := logs.FilterMessage("submission failed").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "correction", ctx["module"])
	assert.Equal(t, "boom", ctx["error"])
}
