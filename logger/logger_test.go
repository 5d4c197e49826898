package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", "")
	require.Error(t, err)
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lms.log")

	log, err := New("info", path)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("book issued", zap.String("book_id", "b1"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"book issued"`)
	assert.Contains(t, string(data), `"book_id":"b1"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestCheckError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	assert.False(t, CheckError(nil, log, "nothing"))
	assert.True(t, CheckError(errors.New("boom"), log, "open history", zap.String("dsn", "memory")))
	assert.True(t, CheckError(errors.New("boom"), nil, "no logger"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "open history", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
}

func TestMakeInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	MakeInfo(zap.New(core), "library open")
	MakeInfo(nil, "dropped")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "library open", logs.All()[0].Message)
}
