package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"log/slog"

	"github.com/juren53/tagwriter"
	"github.com/juren53/tagwriter/pkg/core"
	"github.com/juren53/tagwriter/pkg/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend stores tag values in memory, standing in for ExifTool.
type memBackend struct {
	mu   sync.Mutex
	tags map[string]core.RawTagMap
}

func newMemBackend() *memBackend {
	return &memBackend{tags: make(map[string]core.RawTagMap)}
}

func (b *memBackend) Read(ctx context.Context, path string) (core.RawTagMap, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(core.RawTagMap, len(b.tags[path]))
	for k, v := range b.tags[path] {
		out[k] = v
	}
	return out, nil
}

func (b *memBackend) Write(ctx context.Context, path string, pending []core.PendingWrite) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.tags[path]
	if m == nil {
		m = make(core.RawTagMap)
		b.tags[path] = m
	}
	for _, p := range pending {
		if p.Value == "" {
			delete(m, p.Tag.String())
			continue
		}
		m[p.Tag.String()] = p.Value
	}
	return nil
}

func prepareImage(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0644))
	return path
}

// TestEditRoundTrip drives the full edit cycle through the public facade:
// load, modify, save with backup, reload.
func TestEditRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	path := prepareImage(t, tempDir)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	backend := newMemBackend()

	svc, err := tagwriter.New(
		tagwriter.WithBackend(backend),
		tagwriter.WithLogger(logger),
		tagwriter.WithBackup(true),
	)
	require.NoError(t, err)

	ctx := context.Background()

	// 1. A fresh file has every field, all empty.
	rec, err := svc.Load(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, rec.Get("Headline"))
	assert.Len(t, rec.Values(), len(svc.Registry().Fields()))

	// 2. Edit and save.
	require.NoError(t, rec.Set("Headline", "Harbor at dawn"))
	require.NoError(t, rec.Set("By-line", "A. Photographer"))
	backupPath, err := svc.Save(ctx, path, rec)
	require.NoError(t, err)

	// 3. The backup is a byte-identical copy of the original.
	require.Equal(t, path+"_backup", backupPath)
	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)

	// 4. One edit lands on every namespace variant of the field.
	raw, err := backend.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "Harbor at dawn", raw["IPTC:Headline"])
	assert.Equal(t, "Harbor at dawn", raw["XMP:Headline"])
	assert.Equal(t, "A. Photographer", raw["IPTC:By-line"])
	assert.Equal(t, "A. Photographer", raw["EXIF:Artist"])

	// 5. Reload sees the saved values.
	rec2, err := svc.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "Harbor at dawn", rec2.Get("Headline"))
	assert.Equal(t, "A. Photographer", rec2.Get("By-line"))

	// 6. A second save numbers the next backup.
	require.NoError(t, rec2.Set("Headline", "Harbor at dusk"))
	backupPath, err = svc.Save(ctx, path, rec2)
	require.NoError(t, err)
	assert.Equal(t, path+"_backup1", backupPath)
}

// TestExportImportRoundTrip verifies metadata survives a trip through the
// JSON exchange format onto a second file.
func TestExportImportRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	src := prepareImage(t, tempDir)
	dst := filepath.Join(tempDir, "copy.jpg")
	require.NoError(t, os.WriteFile(dst, []byte("other jpeg"), 0644))

	backend := newMemBackend()
	svc, err := tagwriter.New(tagwriter.WithBackend(backend))
	require.NoError(t, err)

	ctx := context.Background()

	rec, err := svc.Load(ctx, src)
	require.NoError(t, err)
	require.NoError(t, rec.Set("Caption-Abstract", "Two boats.\nMorning fog."))
	require.NoError(t, rec.Set("CopyrightNotice", "© 2026 Example"))
	_, err = svc.Save(ctx, src, rec)
	require.NoError(t, err)

	// Export src, import onto dst.
	jsonPath := filepath.Join(tempDir, "meta.json")
	loaded, err := svc.Load(ctx, src)
	require.NoError(t, err)
	require.NoError(t, exchange.Export(loaded, jsonPath))

	imported, err := exchange.Import(svc.Registry(), jsonPath)
	require.NoError(t, err)
	_, err = svc.Save(ctx, dst, imported)
	require.NoError(t, err)

	got, err := svc.Load(ctx, dst)
	require.NoError(t, err)
	assert.Equal(t, "Two boats.\nMorning fog.", got.Get("Caption-Abstract"))
	assert.Equal(t, "© 2026 Example", got.Get("CopyrightNotice"))
}

// failingBackend rejects every write.
type failingBackend struct{}

func (failingBackend) Read(ctx context.Context, path string) (core.RawTagMap, error) {
	return core.RawTagMap{}, nil
}

func (failingBackend) Write(ctx context.Context, path string, pending []core.PendingWrite) error {
	return core.ErrWriteFailed
}

func TestSaveReportsWriteFailure(t *testing.T) {
	tempDir := t.TempDir()
	path := prepareImage(t, tempDir)

	backend := failingBackend{}
	svc, err := tagwriter.New(tagwriter.WithBackend(backend))
	require.NoError(t, err)

	rec := tagwriter.NewRecord(svc.Registry())
	require.NoError(t, rec.Set("Headline", "x"))

	_, err = svc.Save(context.Background(), path, rec)
	assert.True(t, errors.Is(err, core.ErrWriteFailed), "Expected ErrWriteFailed, got: %v", err)
}

func TestLoadMissingFile(t *testing.T) {
	backend := newMemBackend()
	svc, err := tagwriter.New(tagwriter.WithBackend(backend))
	require.NoError(t, err)

	_, err = svc.Load(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
	assert.Error(t, err)
}
