package gallery_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aperture/internal/gallery"
)

func newFileStore(t *testing.T) *gallery.Store {
	t.Helper()
	backend := gallery.NewFileBackend(t.TempDir())
	return gallery.NewStore(backend, nil, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestStore_InsertPrependsAndShifts(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	first, err := store.Insert(ctx, "first.jpg", "https://blobs.test/first.jpg")
	require.NoError(t, err)
	second, err := store.Insert(ctx, "second.jpg", "https://blobs.test/second.jpg")
	require.NoError(t, err)

	require.NotEmpty(t, first.ID)
	require.NotEqual(t, first.ID, second.ID)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Latest upload sorts first with order 0; the older record shifted to 1.
	assert.Equal(t, second.ID, records[0].ID)
	require.NotNil(t, records[0].Order)
	assert.Equal(t, 0, *records[0].Order)

	assert.Equal(t, first.ID, records[1].ID)
	require.NotNil(t, records[1].Order)
	assert.Equal(t, 1, *records[1].Order)
}

func TestStore_InsertShiftsOrderlessByIndex(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend := gallery.NewFileBackend(dir)

	// Seed legacy records that never carried an order field.
	legacy := []gallery.ImageRecord{
		recordAt("old", time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)),
		recordAt("older", time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, backend.Save(ctx, legacy))

	store := gallery.NewStore(backend, nil, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	inserted, err := store.Insert(ctx, "new.jpg", "https://blobs.test/new.jpg")
	require.NoError(t, err)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{inserted.ID, "old", "older"}, ids(records))

	// Orderless records picked up their sorted index plus one.
	assert.Equal(t, 1, *records[1].Order)
	assert.Equal(t, 2, *records[2].Order)
}

func TestStore_RemoveAbsentLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend := gallery.NewFileBackend(dir)
	store := gallery.NewStore(backend, nil, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	inserted, err := store.Insert(ctx, "keep.jpg", "https://blobs.test/keep.jpg")
	require.NoError(t, err)

	before, err := os.ReadFile(filepath.Join(dir, "images.json"))
	require.NoError(t, err)

	found, err := store.Remove(ctx, "no-such-id")
	require.NoError(t, err)
	assert.False(t, found)

	after, err := os.ReadFile(filepath.Join(dir, "images.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)

	found, err = store.Remove(ctx, inserted.ID)
	require.NoError(t, err)
	assert.True(t, found)

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_ApplyOrderIgnoresUnknownIDs(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	a, err := store.Insert(ctx, "a.jpg", "https://blobs.test/a.jpg")
	require.NoError(t, err)
	b, err := store.Insert(ctx, "b.jpg", "https://blobs.test/b.jpg")
	require.NoError(t, err)

	updates := []gallery.OrderUpdate{
		{ID: a.ID, Order: 0, Column: ptr(2), Position: ptr(0)},
		{ID: b.ID, Order: 1000, Column: ptr(1), Position: ptr(0)},
		{ID: "deleted-meanwhile", Order: 5},
	}
	require.NoError(t, store.ApplyOrder(ctx, updates))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{a.ID, b.ID}, ids(records))

	assert.Equal(t, 0, *records[0].Order)
	assert.Equal(t, 2, *records[0].Column)
	assert.Equal(t, 1000, *records[1].Order)
	assert.Equal(t, 1, *records[1].Column)
}

// flakyBackend fails a configurable number of operations before recovering.
type flakyBackend struct {
	name      string
	records   []gallery.ImageRecord
	loadFails int
	saveFails int
	saves     int
}

func (b *flakyBackend) Name() string { return b.name }

func (b *flakyBackend) Load(ctx context.Context) ([]gallery.ImageRecord, error) {
	if b.loadFails > 0 {
		b.loadFails--
		return nil, errors.New("load unavailable")
	}
	return append([]gallery.ImageRecord(nil), b.records...), nil
}

func (b *flakyBackend) Save(ctx context.Context, records []gallery.ImageRecord) error {
	if b.saveFails > 0 {
		b.saveFails--
		return errors.New("save unavailable")
	}
	b.records = append([]gallery.ImageRecord(nil), records...)
	b.saves++
	return nil
}

func TestStore_ListFailsOverToFallback(t *testing.T) {
	ctx := context.Background()
	primary := &flakyBackend{name: "remote", loadFails: 1}
	fallback := &flakyBackend{
		name:    "file",
		records: []gallery.ImageRecord{record("survivor", ptr(0))},
	}

	store := gallery.NewStore(primary, fallback, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"survivor"}, ids(records))
}

func TestStore_ListReturnsEmptyWhenAllBackendsFail(t *testing.T) {
	ctx := context.Background()
	primary := &flakyBackend{name: "remote", loadFails: 1}
	fallback := &flakyBackend{name: "file", loadFails: 1}

	store := gallery.NewStore(primary, fallback, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestStore_SaveFailsOverToFallback(t *testing.T) {
	ctx := context.Background()
	primary := &flakyBackend{name: "remote", saveFails: 1}
	fallback := &flakyBackend{name: "file"}

	store := gallery.NewStore(primary, fallback, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	inserted, err := store.Insert(ctx, "x.jpg", "https://blobs.test/x.jpg")
	require.NoError(t, err)
	require.NotNil(t, inserted)

	assert.Equal(t, 0, primary.saves)
	assert.Equal(t, 1, fallback.saves)
	assert.Equal(t, []string{inserted.ID}, ids(fallback.records))
}
