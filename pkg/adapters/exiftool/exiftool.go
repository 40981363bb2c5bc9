// Package exiftool implements core.Backend by shelling out to ExifTool.
//
// Reads use one `exiftool -j -G <file>` invocation per file; writes batch
// every tag assignment into a single `exiftool -Tag=value ... <file>` call.
// Each invocation is bounded by a timeout and the subprocess is killed on
// expiry.
package exiftool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/juren53/tagwriter/pkg/core"
)

// DefaultTimeout bounds a single ExifTool invocation.
const DefaultTimeout = 30 * time.Second

// Config holds the configuration for the ExifTool backend.
type Config struct {
	// Path is the ExifTool executable. Empty means "exiftool" on $PATH.
	Path string

	// Timeout bounds each invocation. Zero means DefaultTimeout.
	Timeout time.Duration

	Logger *slog.Logger
}

// Backend invokes the ExifTool executable. It is stateless between calls.
type Backend struct {
	bin     string
	timeout time.Duration
	logger  *slog.Logger
}

// New resolves the executable and returns a Backend. A missing or
// non-executable tool yields core.ErrToolUnavailable.
func New(cfg Config) (*Backend, error) {
	bin := cfg.Path
	if bin == "" {
		bin = "exiftool"
	}
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found in PATH", core.ErrToolUnavailable, bin)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
	}
	return &Backend{bin: resolved, timeout: timeout, logger: logger}, nil
}

// Version returns the tool's version string ("-ver").
func (b *Backend) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, b.bin, "-ver").Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: -ver after %s", core.ErrTimeout, b.timeout)
		}
		return "", fmt.Errorf("%w: %v", core.ErrToolUnavailable, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Read extracts all tags of the file as a flat grouped-key map.
func (b *Backend) Read(ctx context.Context, path string) (core.RawTagMap, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	args := []string{"-j", "-G"}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		// TIFFs routinely carry minor structural warnings.
		args = append(args, "-m")
	}
	args = append(args, path)

	start := time.Now()
	cmd := exec.CommandContext(ctx, b.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	b.logger.Debug("exiftool read", "path", path, "duration", time.Since(start))

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: read of %s exceeded %s", core.ErrTimeout, path, b.timeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The tool ran but rejected the file (unsupported format,
			// corrupt structure). Treat as unreadable metadata.
			return nil, fmt.Errorf("%w: %s", core.ErrParse, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%w: %v", core.ErrToolUnavailable, err)
	}

	return parseJSONOutput(stdout.Bytes())
}

// parseJSONOutput decodes the tool's JSON array (one object per file) into
// a flat tag→string map.
func parseJSONOutput(out []byte) (core.RawTagMap, error) {
	var results []map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(out), &results); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrParse, err)
	}
	if len(results) == 0 {
		return core.RawTagMap{}, nil
	}

	raw := make(core.RawTagMap, len(results[0]))
	for key, value := range results[0] {
		if key == "SourceFile" {
			continue
		}
		raw[key] = stringify(value)
	}
	return raw, nil
}

// stringify flattens the mixed JSON value types ExifTool emits.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// Write applies all pending assignments in one batch. Values are passed as
// single argv elements, so a value that looks like an option (e.g.
// "Summer -Caption=FAKE") stays literal text inside its own tag.
func (b *Backend) Write(ctx context.Context, path string, pending []core.PendingWrite) error {
	if len(pending) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	args := WriteArgs(path, pending)

	start := time.Now()
	out, err := exec.CommandContext(ctx, b.bin, args...).CombinedOutput()
	b.logger.Debug("exiftool write", "path", path, "tags", len(pending), "duration", time.Since(start))

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: write to %s exceeded %s", core.ErrWriteFailed, path, b.timeout)
	}
	if err != nil {
		return fmt.Errorf("%w: %v: %s", core.ErrWriteFailed, err, strings.TrimSpace(string(out)))
	}
	if !writeSucceeded(string(out)) {
		return fmt.Errorf("%w: unexpected tool output: %s", core.ErrWriteFailed, strings.TrimSpace(string(out)))
	}
	return nil
}

// WriteArgs builds the argv for a batch write: one "-Tag=value" element per
// assignment, then -overwrite_original, then the target path.
func WriteArgs(path string, pending []core.PendingWrite) []string {
	args := make([]string, 0, len(pending)+2)
	for _, p := range pending {
		args = append(args, "-"+p.Tag.String()+"="+p.Value)
	}
	args = append(args, "-overwrite_original", path)
	return args
}

// writeSucceeded checks the tool's confirmation line. ExifTool exits zero
// even when it updated nothing, so the output is the real verdict: a
// "N image files updated/created" line with a non-zero count.
func writeSucceeded(out string) bool {
	for _, line := range strings.Split(out, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(line, "0 ") {
			continue
		}
		if strings.Contains(line, "image files updated") ||
			strings.Contains(line, "image files created") ||
			strings.Contains(line, "files updated") ||
			strings.Contains(line, "files created") {
			return true
		}
	}
	return false
}
