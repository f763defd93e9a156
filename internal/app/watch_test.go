package app

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "lang.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	var calls atomic.Int32
	w := NewWatcher(discardLogger(), 50*time.Millisecond, func(_ context.Context, got string) error {
		assert.Equal(t, path, got)
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, path) }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond, "initial run")

	// A burst of writes collapses into one run.
	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte{'{', byte('0' + i), '}'}, 0o644))
		time.Sleep(5 * time.Millisecond)
	}
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond, "debounced run")

	// Other files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	w := NewWatcher(discardLogger(), time.Millisecond, func(context.Context, string) error { return nil })
	err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "absent", "lang.json"))
	assert.Error(t, err)
}
