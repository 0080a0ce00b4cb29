package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDailyFilename(t *testing.T) {
	now := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, filepath.Join("logs", "log_03_07_2026.log"), DailyFilename("logs", now))
}

func TestToWriter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := ToWriter(zap.New(core), zapcore.WarnLevel)

	n, err := w.Write([]byte("slow query\r\n"))
	require.NoError(t, err)
	assert.Equal(t, len("slow query\r\n"), n)

	_, _ = w.Write([]byte("   \n"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "slow query", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestToStdLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	std := ToStdLogger(zap.New(core), zapcore.InfoLevel)
	std.Printf("rows=%d", 3)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "rows=3", logs.All()[0].Message)
}

func TestNewWithRotateWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := NewWithRotate("info", true, file, 1, 1, 1, false)
	l.Info("user added", zap.String("user_id", "u1"))
	l.Debug("dropped below level")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"user_id":"u1"`)
	assert.NotContains(t, string(b), "dropped below level")
}

func TestBuildBadLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := Build(Options{Level: "loud"})
	defer cleanup()
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestBuildConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "info", JSON: true, Console: zapcore.AddSync(&buf)})
	l.Info("status added", zap.String("status_id", "s1"))
	cleanup()
	assert.Contains(t, buf.String(), `"msg":"status added"`)
}
