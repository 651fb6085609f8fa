package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesFiles(t *testing.T) {
	dir := t.TempDir()
	log := New(Config{Level: "debug", App: "wheel", Dir: dir, File: true})

	log.Info("spin settled")
	log.Error("credit failed")
	_ = log.Sync()

	info, err := os.ReadFile(filepath.Join(dir, "wheel.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "spin settled")
	assert.Contains(t, string(info), "credit failed")

	errs, err := os.ReadFile(filepath.Join(dir, "wheel_error.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(errs), "spin settled")
	assert.Contains(t, string(errs), "credit failed")
}

func TestNewInvalidLevel(t *testing.T) {
	log := New(Config{Level: "loud"})
	assert.True(t, log.Core().Enabled(0))
	assert.False(t, log.Core().Enabled(-1))
}
