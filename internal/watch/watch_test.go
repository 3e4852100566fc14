package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Matches(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "prices.db"))
	require.NoError(t, err)
	defer w.Close()

	assert.True(t, w.Matches(filepath.Join(dir, "prices.db")))
	assert.True(t, w.Matches(filepath.Join(dir, "prices.db-wal")))
	assert.True(t, w.Matches("prices.db-journal"))
	assert.False(t, w.Matches(filepath.Join(dir, "other.db")))
	assert.False(t, w.Matches(filepath.Join(dir, "prices.dbx")))
}

func TestWatcher_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prices.db")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w, err := New(path, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path+"-wal", []byte("b"), 0o644))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "prices.db"), WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-w.Changes():
		t.Fatal("unrelated file should not notify")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CloseClosesChanges(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "prices.db"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Changes()
	assert.False(t, ok)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "prices.db"))
	require.Error(t, err)
}
