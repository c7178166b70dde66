package notesfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestWatcher_FiresOnceAfterBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "08-30-2026-notes.md")
	require.NoError(t, os.WriteFile(path, []byte("initial\n"), 0644))

	changed := make(chan string, 16)
	w, err := NewWatcher(path, 200*time.Millisecond, zap.NewNop(), func(p string) {
		changed <- p
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// A burst of rapid saves, the way editors flush.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("edit\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case p := <-changed:
		assert.Equal(t, path, p)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never fired")
	}

	// The burst settles into a single callback.
	select {
	case <-changed:
		t.Fatal("burst produced more than one callback")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "08-30-2026-notes.md")
	require.NoError(t, os.WriteFile(path, []byte("initial\n"), 0644))

	changed := make(chan string, 16)
	w, err := NewWatcher(path, 100*time.Millisecond, zap.NewNop(), func(p string) {
		changed <- p
	})
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x\n"), 0644))

	select {
	case <-changed:
		t.Fatal("sibling file tripped the watcher")
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatcher_StartStopIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "notes.md")
	w, err := NewWatcher(path, time.Second, nil, nil)
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()), "second start is a no-op")
	assert.True(t, w.IsWatching())

	w.Stop()
	assert.False(t, w.IsWatching())
	w.Stop() // second stop must not panic or block
}
