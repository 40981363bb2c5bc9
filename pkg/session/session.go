// Package session tracks the editing session: which file is open, its
// place in the directory listing for next/previous navigation, and the
// persisted user preferences (recent files, backup policy).
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ImagePattern matches the file types the editor handles.
const ImagePattern = "*.{jpg,jpeg,png,gif,tif,tiff,bmp}"

// Session holds the current file and its directory siblings. It is owned
// by the caller and passed around by reference; the metadata core never
// sees it.
type Session struct {
	Config *Config

	dir   string
	files []string
	index int
}

// New creates a session with the given (possibly zero-value) config.
func New(cfg *Config) *Session {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Session{Config: cfg, index: -1}
}

// Open selects a file and scans its directory so Next/Prev work.
func (s *Session) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	files, err := ScanImages(dir)
	if err != nil {
		return err
	}

	s.dir = dir
	s.files = files
	s.index = -1
	for i, f := range files {
		if f == abs {
			s.index = i
			break
		}
	}
	if s.index == -1 {
		return fmt.Errorf("%s is not an image file", path)
	}

	s.Config.AddRecentFile(abs)
	s.Config.AddRecentDirectory(dir)
	s.Config.LastDirectory = dir
	return nil
}

// Current returns the open file, or "" when nothing is open.
func (s *Session) Current() string {
	if s.index < 0 || s.index >= len(s.files) {
		return ""
	}
	return s.files[s.index]
}

// Files returns the directory's image files in display order.
func (s *Session) Files() []string {
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// Next advances to the next image in the directory, wrapping around.
func (s *Session) Next() (string, error) {
	return s.step(1)
}

// Prev steps back to the previous image, wrapping around.
func (s *Session) Prev() (string, error) {
	return s.step(-1)
}

func (s *Session) step(delta int) (string, error) {
	if len(s.files) == 0 || s.index < 0 {
		return "", fmt.Errorf("no file open")
	}
	s.index = (s.index + delta + len(s.files)) % len(s.files)
	current := s.files[s.index]
	s.Config.AddRecentFile(current)
	return current, nil
}

// ScanImages lists the image files of a directory, sorted by name
// case-insensitively. Subdirectories and non-image files are skipped.
func ScanImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ok, err := doublestar.Match(ImagePattern, strings.ToLower(entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("bad image pattern: %w", err)
		}
		if ok {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, nil
}
