package catalog

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reloadResult struct {
	catalog *Catalog
	err     error
}

func startWatcher(t *testing.T, path string, holder *Holder) <-chan reloadResult {
	t.Helper()

	w, err := NewWatcher(path, holder, log.New(io.Discard))
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)

	results := make(chan reloadResult, 4)
	w.OnReload(func(c *Catalog, err error) {
		results <- reloadResult{catalog: c, err: err}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	return results
}

func waitReload(t *testing.T, results <-chan reloadResult) reloadResult {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for catalog reload")
		return reloadResult{}
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	initial, err := LoadFile(path)
	require.NoError(t, err)
	holder := NewHolder(initial)
	results := startWatcher(t, path, holder)

	updated := sampleYAML + `
  - id: "c"
    title: Third
    level: intermediate
    created_at: "2025-09-01"
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	r := waitReload(t, results)
	require.NoError(t, r.err)
	assert.Equal(t, 3, r.catalog.Len())
	assert.Same(t, r.catalog, holder.Current())
	assert.Equal(t, 2, initial.Len(), "old catalog is never mutated")
}

func TestWatcher_KeepsPreviousOnInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	initial, err := LoadFile(path)
	require.NoError(t, err)
	holder := NewHolder(initial)
	results := startWatcher(t, path, holder)

	broken := `
projects:
  - {id: "1", title: A, level: basic, created_at: "2025-08-01"}
  - {id: "1", title: B, level: basic, created_at: "2025-08-01"}
`
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o600))

	r := waitReload(t, results)
	require.Error(t, r.err)
	assert.ErrorIs(t, r.err, ErrDuplicateID)
	assert.Nil(t, r.catalog)
	assert.Same(t, initial, holder.Current())
}

func TestWatcher_KeepsPreviousOnTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	initial, err := LoadFile(path)
	require.NoError(t, err)
	holder := NewHolder(initial)
	results := startWatcher(t, path, holder)

	require.NoError(t, os.WriteFile(path, nil, 0o600))

	r := waitReload(t, results)
	assert.ErrorIs(t, r.err, ErrEmptyCatalog)
	assert.Nil(t, r.catalog)
	assert.Same(t, initial, holder.Current())
	assert.Equal(t, 2, holder.Current().Len())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	initial, err := LoadFile(path)
	require.NoError(t, err)
	results := startWatcher(t, path, NewHolder(initial))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o600))

	select {
	case r := <-results:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}
