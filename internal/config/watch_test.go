package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0600))

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, zerolog.Nop(), func(c *Config) {
		changes <- c
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	// Invalid contents never reach the callback
	require.NoError(t, os.WriteFile(path, []byte(`{"widget_size": -1}`), 0600))
	time.Sleep(3 * reloadDelay)
	select {
	case c := <-changes:
		t.Fatalf("unexpected reload %+v", c.WidgetSize)
	default:
	}

	require.NoError(t, os.WriteFile(path, []byte(`{"widget_size": 420}`), 0600))

	select {
	case c := <-changes:
		assert.Equal(t, 420, c.WidgetSize)
		assert.Equal(t, path, c.Path())
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	changes := make(chan *Config, 1)
	w, err := NewWatcher(path, zerolog.Nop(), func(c *Config) {
		changes <- c
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "journal.db"), []byte("x"), 0600))
	time.Sleep(3 * reloadDelay)

	select {
	case <-changes:
		t.Fatal("reload for unrelated file")
	default:
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	w, err := NewWatcher(path, zerolog.Nop(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
