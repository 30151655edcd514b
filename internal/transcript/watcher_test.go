package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesBursts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fsnotify event delivery is unreliable on Windows CI")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alice: hi\n"), 0644))

	events := make(chan string, 8)
	w, err := NewWatcher(path, func(p string) { events <- p })
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// A burst of rapid saves should collapse into one notification.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("Alice: hi %d\n", i)), 0644))
		time.Sleep(50 * time.Millisecond)
	}

	select {
	case got := <-events:
		assert.Equal(t, path, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification within 3s")
	}

	select {
	case <-events:
		t.Fatal("burst produced more than one notification")
	case <-time.After(700 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fsnotify event delivery is unreliable on Windows CI")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alice: hi\n"), 0644))

	events := make(chan string, 8)
	w, err := NewWatcher(path, func(p string) { events <- p })
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("unrelated\n"), 0644))

	select {
	case got := <-events:
		t.Fatalf("unexpected notification for %s", got)
	case <-time.After(900 * time.Millisecond):
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	w, err := NewWatcher(path, func(string) {})
	require.NoError(t, err)

	// Stop before Start is a no-op.
	w.Stop()

	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()), "second Start is a no-op")

	w.Stop()
	w.Stop()
}
