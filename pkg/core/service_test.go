package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeBackend implements Backend in memory.
type fakeBackend struct {
	tags    RawTagMap
	written []PendingWrite
	readErr error
	loadErr error
}

func (f *fakeBackend) Read(ctx context.Context, path string) (RawTagMap, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.tags, nil
}

func (f *fakeBackend) Write(ctx context.Context, path string, pending []PendingWrite) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.written = append(f.written, pending...)
	return nil
}

func tempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, []byte("not really a jpeg"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadResolvesPriority(t *testing.T) {
	backend := &fakeBackend{tags: RawTagMap{
		"IPTC:DateCreated": "2020:01:02",
		"XMP:DateCreated":  "2021:05:06",
		"XMP:Description":  "From the XMP side",
	}}
	svc := NewService(backend, DefaultRegistry(), nil)

	rec, err := svc.Load(context.Background(), tempImage(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// IPTC outranks XMP for DateCreated.
	if got := rec.Get("DateCreated"); got != "2020:01:02" {
		t.Errorf("DateCreated = %q, want IPTC value", got)
	}
	// Caption falls through to the second candidate.
	if got := rec.Get("Caption-Abstract"); got != "From the XMP side" {
		t.Errorf("Caption-Abstract = %q", got)
	}
	// Unmatched fields come back empty, not missing.
	if got := rec.Get("Credit"); got != "" {
		t.Errorf("Credit = %q, want empty", got)
	}
}

func TestLoadSkipsEmptyCandidates(t *testing.T) {
	backend := &fakeBackend{tags: RawTagMap{
		"IPTC:Headline": "",
		"XMP:Headline":  "The real one",
	}}
	svc := NewService(backend, DefaultRegistry(), nil)

	rec, err := svc.Load(context.Background(), tempImage(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := rec.Get("Headline"); got != "The real one" {
		t.Errorf("Headline = %q, empty candidate should be skipped", got)
	}
}

func TestLoadFilesystemFallback(t *testing.T) {
	path := tempImage(t)
	mtime := time.Date(2024, 7, 15, 10, 20, 30, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	// No date-modified tags at all.
	backend := &fakeBackend{tags: RawTagMap{"IPTC:Headline": "x"}}
	svc := NewService(backend, DefaultRegistry(), nil)

	rec, err := svc.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := rec.Get("DateModified"); got != "2024:07:15 10:20:30" {
		t.Errorf("DateModified = %q, want filesystem mtime", got)
	}
}

func TestLoadToolUnavailable(t *testing.T) {
	backend := &fakeBackend{readErr: fmt.Errorf("%w: exiftool", ErrToolUnavailable)}
	svc := NewService(backend, DefaultRegistry(), nil)

	rec, err := svc.Load(context.Background(), tempImage(t))
	if !errors.Is(err, ErrToolUnavailable) {
		t.Fatalf("expected ErrToolUnavailable, got %v", err)
	}
	if rec != nil {
		t.Error("no record should be produced on failure")
	}
}

func TestLoadMissingFile(t *testing.T) {
	svc := NewService(&fakeBackend{}, DefaultRegistry(), nil)
	if _, err := svc.Load(context.Background(), filepath.Join(t.TempDir(), "gone.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExpandCoversAllCandidates(t *testing.T) {
	reg := DefaultRegistry()
	rec := NewRecord(reg)
	rec.Set("Headline", "Summer")

	pending := Expand(rec)

	var headlineTags []string
	for _, p := range pending {
		if p.Tag.Namespace == FileSystem {
			t.Errorf("FileSystem tag %v staged for write", p.Tag)
		}
		if p.Value == "Summer" {
			headlineTags = append(headlineTags, p.Tag.String())
		}
	}
	// One logical edit fans out to every declared candidate.
	want := 4 // IPTC, XMP-photoshop, XMP:Headline, XMP:Title
	if len(headlineTags) != want {
		t.Errorf("Headline expanded to %d tags (%v), want %d", len(headlineTags), headlineTags, want)
	}
}

func TestExpandSharedCandidateNotClobbered(t *testing.T) {
	rec := NewRecord(DefaultRegistry())
	rec.Set("Headline", "Summer")
	// ObjectName stays empty; it shares the XMP:Title candidate.

	var titles []PendingWrite
	for _, p := range Expand(rec) {
		if p.Tag == (TagID{XMP, "Title"}) {
			titles = append(titles, p)
		}
	}
	if len(titles) != 1 {
		t.Fatalf("XMP:Title staged %d times, want once", len(titles))
	}
	if titles[0].Value != "Summer" {
		t.Errorf("XMP:Title = %q, empty ObjectName clobbered the headline", titles[0].Value)
	}
}

func TestExpandSanitizes(t *testing.T) {
	rec := NewRecord(DefaultRegistry())
	rec.Set("Credit", "  Archive\x00  ")

	for _, p := range Expand(rec) {
		if p.Tag == (TagID{IPTC, "Credit"}) && p.Value != "Archive" {
			t.Errorf("Credit staged as %q, want sanitized", p.Value)
		}
	}
}

func TestSaveWritesBatch(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend, DefaultRegistry(), nil)
	rec := NewRecord(svc.Registry())
	rec.Set("Headline", "Harbor at dawn")

	backupPath, err := svc.Save(context.Background(), tempImage(t), rec)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if backupPath != "" {
		t.Errorf("backup disabled, got path %q", backupPath)
	}
	if len(backend.written) == 0 {
		t.Fatal("nothing written")
	}
}

func TestSaveBackup(t *testing.T) {
	path := tempImage(t)
	backend := &fakeBackend{}
	svc := NewService(backend, DefaultRegistry(), nil)
	svc.SetBackup(true)

	backupPath, err := svc.Save(context.Background(), path, NewRecord(svc.Registry()))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if backupPath != path+"_backup" {
		t.Errorf("backup path = %q", backupPath)
	}
	original, _ := os.ReadFile(path)
	backup, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("backup unreadable: %v", err)
	}
	if string(original) != string(backup) {
		t.Error("backup is not byte-identical")
	}

	// Second backup gets a numbered sibling.
	second, err := svc.Save(context.Background(), path, NewRecord(svc.Registry()))
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if second != path+"_backup1" {
		t.Errorf("second backup path = %q", second)
	}
}

func TestSaveWriteFailureReturnsBackup(t *testing.T) {
	path := tempImage(t)
	backend := &fakeBackend{loadErr: fmt.Errorf("%w: exit 1", ErrWriteFailed)}
	svc := NewService(backend, DefaultRegistry(), nil)
	svc.SetBackup(true)

	backupPath, err := svc.Save(context.Background(), path, NewRecord(svc.Registry()))
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
	// The backup path still comes back so the caller can offer a restore.
	if backupPath == "" {
		t.Error("backup path lost on write failure")
	}
}

func TestSaveReadOnlyFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks are meaningless as root")
	}
	path := tempImage(t)
	if err := os.Chmod(path, 0444); err != nil {
		t.Fatal(err)
	}

	backend := &fakeBackend{}
	svc := NewService(backend, DefaultRegistry(), nil)
	_, err := svc.Save(context.Background(), path, NewRecord(svc.Registry()))
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if len(backend.written) != 0 {
		t.Error("backend invoked despite permission failure")
	}
}
