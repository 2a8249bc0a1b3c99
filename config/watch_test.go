package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rig:\n  max_speed: 10\n")
	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("rig:\n  max_speed: 30\n"), 0o644))

	select {
	case cfg := <-w.Configs:
		require.NotNil(t, cfg)
		assert.Equal(t, float32(30), cfg.Rig.MaxSpeed)
	case err := <-w.Errors:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatcherReportsInvalidReload(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rig:\n  max_speed: 10\n")
	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("rig:\n  damping: -4\n"), 0o644))

	select {
	case err := <-w.Errors:
		assert.ErrorContains(t, err, "damping")
	case cfg := <-w.Configs:
		t.Fatalf("invalid config delivered: %+v", cfg.Rig)
	case <-time.After(5 * time.Second):
		t.Fatal("no error within 5s")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rig:\n  max_speed: 10\n")
	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))

	select {
	case cfg := <-w.Configs:
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rig:\n  max_speed: 10\n")
	w, err := NewWatcher(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	_, ok := <-w.Configs
	assert.False(t, ok)
	_, ok = <-w.Errors
	assert.False(t, ok)
	assert.NoError(t, w.Close(), "second close is a no-op")
}
