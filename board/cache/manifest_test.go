package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/mesh"
)

func TestManifest_RecordListLookupClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "manifest.db")
	mf := NewManifest(path)
	defer mf.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 123, time.UTC)
	require.NoError(t, mf.Record(ctx, Entry{Key: "Track_x_i1", File: "Track_x_i1.ply", Kind: "Track", Vertices: 8, Faces: 12, RunID: "r1", CreatedAt: created}))
	require.NoError(t, mf.Record(ctx, Entry{Key: "Board_x_i9", File: "Board_x_i9.ply", Kind: "Board", Vertices: 80, Faces: 120, RunID: "r1", CreatedAt: created}))
	// re-recording a key replaces it
	require.NoError(t, mf.Record(ctx, Entry{Key: "Track_x_i1", File: "Track_x_i1.ply.zst", Kind: "Track", Vertices: 8, Faces: 12, RunID: "r2", CreatedAt: created}))

	entries, err := mf.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Board_x_i9", entries[0].Key)
	assert.Equal(t, "r2", entries[1].RunID)
	assert.True(t, created.Equal(entries[1].CreatedAt))

	e, ok, err := mf.Lookup(ctx, "Board_x_i9")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 120, e.Faces)

	_, ok, err = mf.Lookup(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := mf.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	entries, err = mf.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestManifest_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "manifest.db")

	mf := NewManifest(path)
	require.NoError(t, mf.Record(ctx, Entry{Key: "k", File: "k.ply", Kind: "k", CreatedAt: time.Now()}))
	require.NoError(t, mf.Close())

	mf = NewManifest(path)
	defer mf.Close()
	_, ok, err := mf.Lookup(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestManifest_ReadingNeverCreatesTheDatabase(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	path := filepath.Join(dir, "manifest.db")
	mf := NewManifest(path)
	defer mf.Close()

	// GIVEN a manifest that was never written, WHEN it is read and cleared
	entries, err := mf.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	_, ok, err := mf.Lookup(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	n, err := mf.Clear(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// THEN neither the directory nor the database exists
	_, err = os.Stat(dir)
	assert.True(t, errors.Is(err, os.ErrNotExist), "cache directory was created")

	// WHEN an entry is recorded THEN the database appears
	require.NoError(t, mf.Record(ctx, Entry{Key: "k", File: "k.ply", Kind: "k", CreatedAt: time.Now()}))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestManifest_EmptyPathFailsOnWrite(t *testing.T) {
	err := NewManifest("").Record(context.Background(), Entry{Key: "k"})
	assert.Error(t, err)
}

func TestStore_FilesAndClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store := NewStore(dir, true)

	files, err := store.Files()
	require.NoError(t, err)
	assert.Empty(t, files, "missing directory has no files")

	m, err := mesh.Box(r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	name, err := store.Save("Box (1 mm)", m)
	require.NoError(t, err)
	assert.Equal(t, "Box_1_mm.ply.zst", name)
	_, err = store.Save("Other", m)
	require.NoError(t, err)

	files, err = store.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"Box_1_mm.ply.zst", "Other.ply.zst"}, files)

	n, err := store.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	files, err = store.Files()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestStore_RejectsUnusableKey(t *testing.T) {
	store := NewStore(t.TempDir(), false)
	m, err := mesh.Box(r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	_, err = store.Save("///", m)
	assert.Error(t, err)
}
