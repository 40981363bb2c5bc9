// Package core holds the domain: the field registry, the editable record,
// sanitization and the read/write service. It depends on nothing but the
// Backend port; all tool specifics live in adapters.
package core

import (
	"fmt"
	"time"
)

// DateLayout is the date format the backend tool uses for plain dates.
const DateLayout = "2006:01:02"

// Record holds the in-memory editable metadata of one open file: one string
// value (possibly empty) per logical field in the registry. A fresh Record
// is created on every file open; it is never shared between files.
type Record struct {
	reg    *Registry
	values map[string]string
}

// NewRecord creates an empty record covering every field of reg.
func NewRecord(reg *Registry) *Record {
	r := &Record{
		reg:    reg,
		values: make(map[string]string, len(reg.fields)),
	}
	for _, f := range reg.fields {
		r.values[f.Name] = ""
	}
	return r
}

// Registry returns the registry this record was built from.
func (r *Record) Registry() *Registry {
	return r.reg
}

// Get returns the value of a field, or "" for unknown names.
func (r *Record) Get(name string) string {
	return r.values[name]
}

// Set assigns a field value. Unknown field names are rejected so typos
// surface instead of silently creating orphan entries.
func (r *Record) Set(name, value string) error {
	if !r.reg.Has(name) {
		return fmt.Errorf("unknown field %q", name)
	}
	r.values[name] = value
	return nil
}

// Clear blanks every field.
func (r *Record) Clear() {
	for name := range r.values {
		r.values[name] = ""
	}
}

// SetToday sets DateCreated to the current date in the backend tool's
// date syntax.
func (r *Record) SetToday(now time.Time) {
	r.values["DateCreated"] = now.Format(DateLayout)
}

// Values returns a copy of the field map, one entry per registry field.
func (r *Record) Values() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Equal reports whether two records hold the same values field by field.
func (r *Record) Equal(other *Record) bool {
	if other == nil || len(r.values) != len(other.values) {
		return false
	}
	for k, v := range r.values {
		if other.values[k] != v {
			return false
		}
	}
	return true
}
