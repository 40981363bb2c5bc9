package tagwriter

import (
	"log/slog"
	"time"

	"github.com/juren53/tagwriter/internal/platform"
	"github.com/juren53/tagwriter/pkg/core"
)

// Version exposes the application version.
const Version = platform.Version

// --- Types ---

// Record is the in-memory editable metadata of one open file.
type Record = core.Record

// Registry is the fixed catalogue of logical fields.
type Registry = core.Registry

// LogicalField is one named metadata attribute.
type LogicalField = core.LogicalField

// TagID is one concrete (namespace, tag name) pair.
type TagID = core.TagID

// Backend is the contract for the metadata tool adapter.
type Backend = core.Backend

// Service implements the read and write paths.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = platform.Option

// WithBackend injects a custom metadata backend.
func WithBackend(b core.Backend) Option {
	return platform.WithBackend(b)
}

// WithRegistry overrides the default field catalogue.
func WithRegistry(reg *core.Registry) Option {
	return platform.WithRegistry(reg)
}

// WithLogger sets the logger for the service and its backend.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithExiftoolPath overrides the ExifTool executable resolved from $PATH.
func WithExiftoolPath(path string) Option {
	return platform.WithExiftoolPath(path)
}

// WithTimeout bounds each tool invocation.
func WithTimeout(d time.Duration) Option {
	return platform.WithTimeout(d)
}

// WithBackup makes every save copy the original file aside first.
func WithBackup(enabled bool) Option {
	return platform.WithBackup(enabled)
}

// --- Factory ---

// New creates a ready-to-use metadata Service.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}

// DefaultRegistry returns the standard IPTC editing catalogue.
func DefaultRegistry() *core.Registry {
	return core.DefaultRegistry()
}

// NewRecord creates an empty record covering every field of reg.
func NewRecord(reg *core.Registry) *core.Record {
	return core.NewRecord(reg)
}

// Sanitize makes a string safe for the write path.
func Sanitize(s string) string {
	return core.Sanitize(s)
}
