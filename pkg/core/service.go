package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

// TimestampLayout is the backend tool's date-time syntax, also used for the
// filesystem fallback value of DateModified.
const TimestampLayout = "2006:01:02 15:04:05"

// Service implements the read and write paths on top of an injected
// Backend. It holds no per-file state: every call takes the file path and
// record explicitly.
type Service struct {
	backend Backend
	reg     *Registry
	logger  *slog.Logger
	backup  bool
}

// NewService creates a Service. A nil logger disables logging.
func NewService(backend Backend, reg *Registry, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
	}
	return &Service{backend: backend, reg: reg, logger: logger}
}

// SetBackup enables or disables the pre-write backup copy. Off by default;
// this is caller policy, not core logic.
func (s *Service) SetBackup(enabled bool) {
	s.backup = enabled
}

// Registry returns the field catalogue the service resolves against.
func (s *Service) Registry() *Registry {
	return s.reg
}

// Load reads the file's metadata and resolves it into a complete Record:
// every logical field gets the first non-empty value among its tag
// candidates, the filesystem fallback where declared, or "".
func (s *Service) Load(ctx context.Context, path string) (*Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrAccessDenied, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}

	raw, err := s.backend.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	rec := NewRecord(s.reg)
	for _, field := range s.reg.fields {
		value := resolveField(field, raw, info.ModTime())
		rec.values[field.Name] = value
	}
	s.logger.Debug("metadata loaded", "path", path, "tags", len(raw))
	return rec, nil
}

// resolveField walks the candidates in priority order; first present
// non-empty value wins. FileSystem candidates resolve from the mtime.
func resolveField(field LogicalField, raw RawTagMap, modTime time.Time) string {
	for _, tag := range field.Candidates {
		if tag.Namespace == FileSystem {
			return modTime.Format(TimestampLayout)
		}
		if v, ok := raw[tag.String()]; ok && v != "" {
			return v
		}
	}
	return ""
}

// Expand builds the pending write set for a record: each field's sanitized
// value fanned out to every declared tag candidate, so one logical edit
// updates all namespace variants. FileSystem pseudo-tags are skipped.
// Empty values are staged too; they clear the tag on disk.
//
// Fields may share candidates (Headline and ObjectName both declare
// XMP:Title). Each tag is staged once: the first field with a non-empty
// value owns it, so a blank field never clobbers a sibling's value.
func Expand(rec *Record) []PendingWrite {
	var pending []PendingWrite
	staged := make(map[TagID]int)

	for _, field := range rec.reg.fields {
		value := Sanitize(rec.values[field.Name])
		for _, tag := range field.Candidates {
			if tag.Namespace == FileSystem {
				continue
			}
			if i, ok := staged[tag]; ok {
				if pending[i].Value == "" && value != "" {
					pending[i].Value = value
				}
				continue
			}
			staged[tag] = len(pending)
			pending = append(pending, PendingWrite{Tag: tag, Value: value})
		}
	}
	return pending
}

// Save persists the record's values to the file in one batch invocation.
// When backup is enabled a byte-identical copy is made first and its path
// returned; on write failure the caller should offer to restore it.
func (s *Service) Save(ctx context.Context, path string, rec *Record) (backupPath string, err error) {
	if err := checkWritable(path); err != nil {
		return "", err
	}

	if s.backup {
		backupPath, err = BackupFile(path)
		if err != nil {
			return "", fmt.Errorf("create backup: %w", err)
		}
		s.logger.Debug("backup created", "path", backupPath)
	}

	pending := Expand(rec)
	if err := s.backend.Write(ctx, path, pending); err != nil {
		return backupPath, err
	}
	s.logger.Debug("metadata saved", "path", path, "tags", len(pending))
	return backupPath, nil
}

// checkWritable surfaces permission problems before the tool runs, so
// AccessDenied always means "file untouched".
func checkWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %s", ErrAccessDenied, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %s", ErrAccessDenied, path)
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	return f.Close()
}

// BackupFile copies path to a sibling "<path>_backup" (numbered when that
// already exists) and returns the backup path.
func BackupFile(path string) (string, error) {
	backupPath := path + "_backup"
	for counter := 1; ; counter++ {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			break
		}
		backupPath = fmt.Sprintf("%s_backup%d", path, counter)
	}

	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", err
	}

	dst, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(backupPath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(backupPath)
		return "", err
	}
	return backupPath, nil
}
