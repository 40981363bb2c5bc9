package core

import "errors"

// Common errors. Backends and the service wrap these so callers can match
// with errors.Is regardless of the underlying tool.
var (
	// ErrToolUnavailable means the external metadata tool is missing or not
	// executable. Fatal for any metadata operation until resolved.
	ErrToolUnavailable = errors.New("metadata tool unavailable")

	// ErrTimeout means a tool invocation exceeded its bound. Retryable.
	ErrTimeout = errors.New("metadata tool timed out")

	// ErrParse means the tool produced output the reader could not
	// understand. Callers should treat the file as having no readable
	// metadata.
	ErrParse = errors.New("unparseable tool output")

	// ErrWriteFailed means the tool reported failure (or timed out) while
	// writing. The file state is uncertain; offer a backup restore if one
	// was taken.
	ErrWriteFailed = errors.New("metadata write failed")

	// ErrAccessDenied means a filesystem permission problem. The file was
	// not touched.
	ErrAccessDenied = errors.New("access denied")

	// ErrImport means a JSON import could not be read or decoded. The
	// in-memory record is left unchanged.
	ErrImport = errors.New("metadata import failed")
)
