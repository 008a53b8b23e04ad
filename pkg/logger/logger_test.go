package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Debug("hidden %d", 1)
	log.Info("booking %d created", 42)
	_ = log.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "booking 42 created")
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestFromZap_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core))

	log.Warn("slot %s taken", "10:00")
	log.Error("fetch failed: %v", assert.AnError)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "slot 10:00 taken", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func TestClose_ReleasesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(path, "info")
	require.NoError(t, err)
	file := log.file
	require.NotNil(t, file)

	_ = log.Close()

	_, err = file.WriteString("after close")
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Nil(t, log.file)
	assert.NotPanics(t, func() { _ = log.Close() })
}
