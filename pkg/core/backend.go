package core

import "context"

// RawTagMap is the flat tag→value output of one read invocation, keyed by
// grouped tag name (e.g. "IPTC:Headline"). It is ephemeral: produced fresh
// per read, consumed to build a Record, then discarded.
type RawTagMap map[string]string

// PendingWrite is one staged (concrete tag, sanitized value) assignment.
type PendingWrite struct {
	Tag   TagID
	Value string
}

// Backend is the contract for the external process (or library) that
// actually parses and writes image-file metadata. Adhering to this
// interface keeps the core independent of any specific tool and lets tests
// run against a fake.
type Backend interface {
	// Read extracts all tags of the file in one invocation.
	Read(ctx context.Context, path string) (RawTagMap, error)

	// Write applies all pending tag assignments to the file in one batch.
	// An empty value clears the tag.
	Write(ctx context.Context, path string, pending []PendingWrite) error
}
