package platform

import (
	"log/slog"
	"time"

	"github.com/juren53/tagwriter/pkg/core"
)

// options holds the internal configuration for the tagwriter service.
type options struct {
	backend      core.Backend
	registry     *core.Registry
	logger       *slog.Logger
	exiftoolPath string
	timeout      time.Duration
	backup       bool
}

// Option defines a functional option for configuring the service.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithBackend injects a custom metadata backend (e.g. a fake for tests or
// the embedded read-only decoder). If provided, the default ExifTool
// backend is skipped.
func WithBackend(b core.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithRegistry overrides the default field catalogue.
func WithRegistry(reg *core.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithLogger sets the logger for the service and its backend.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithExiftoolPath overrides the ExifTool executable resolved from $PATH.
// Ignored when a custom backend is injected.
func WithExiftoolPath(path string) Option {
	return func(o *options) {
		o.exiftoolPath = path
	}
}

// WithTimeout bounds each tool invocation. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithBackup makes every save copy the original file aside first.
func WithBackup(enabled bool) Option {
	return func(o *options) {
		o.backup = enabled
	}
}
