// Package platform wires the metadata core to its default adapters.
package platform

import (
	"github.com/juren53/tagwriter/pkg/adapters/exiftool"
	"github.com/juren53/tagwriter/pkg/core"
)

// Version is the application version.
const Version = "0.2.0"

// New builds a ready-to-use metadata service.
//
// By default it resolves ExifTool from $PATH and fails with
// core.ErrToolUnavailable when it is missing; inject another backend with
// WithBackend.
func New(opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	backend := o.backend
	if backend == nil {
		var err error
		backend, err = exiftool.New(exiftool.Config{
			Path:    o.exiftoolPath,
			Timeout: o.timeout,
			Logger:  o.logger,
		})
		if err != nil {
			return nil, err
		}
	}

	registry := o.registry
	if registry == nil {
		registry = core.DefaultRegistry()
	}

	svc := core.NewService(backend, registry, o.logger)
	svc.SetBackup(o.backup)
	return svc, nil
}
