package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToWriterEmitsOneEntryPerLine(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := ToWriter(zap.New(core), zapcore.WarnLevel)

	_, err := w.Write([]byte("slow query detected\n"))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "slow query detected", entries[0].Message)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	l, cleanup := New(Options{Level: "info", JSON: true, App: "raluma-api", File: FileRotate{Enable: true, Filename: path, MaxSizeMB: 1}})

	l.Info("hello", zap.String("k", "v"))
	cleanup()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), `"msg":"hello"`)
	require.Contains(t, string(b), `"k":"v"`)
	require.Contains(t, string(b), `"app":"raluma-api"`)
}
