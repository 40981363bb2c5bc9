package core

import "fmt"

// Namespace identifies the metadata standard a concrete tag belongs to.
type Namespace string

const (
	IPTC         Namespace = "IPTC"
	EXIF         Namespace = "EXIF"
	XMP          Namespace = "XMP"
	XMPPhotoshop Namespace = "XMP-photoshop"
	ICCProfile   Namespace = "ICC_Profile"

	// FileSystem is a pseudo-namespace for values derived from the file
	// itself (e.g. the modification timestamp). FileSystem tags are read
	// fallbacks only and are never written.
	FileSystem Namespace = "FileSystem"
)

// TagID is one concrete (namespace, tag name) pair that may hold a logical
// field's value. Its string form matches the grouped key syntax of the
// backend tool, e.g. "IPTC:Headline".
type TagID struct {
	Namespace Namespace
	Name      string
}

func (t TagID) String() string {
	return string(t.Namespace) + ":" + t.Name
}

// LogicalField is a named metadata attribute exposed to the user, decoupled
// from any single underlying tag.
type LogicalField struct {
	// Name is the stable identifier used in records and JSON exports.
	Name string

	// Label is the human-readable form shown by UIs.
	Label string

	// MaxLength is the advisory per-field limit enforced by UIs. The
	// sanitizer's hard ceiling (MaxValueLength) is independent of it.
	MaxLength int

	// Candidates lists the concrete tags that may hold this field's value,
	// in read-resolution priority order: the first candidate present with a
	// non-empty value wins.
	Candidates []TagID
}

// Registry is the fixed, ordered catalogue of logical fields and their tag
// mappings. It is static configuration: construct it once and share it.
type Registry struct {
	fields []LogicalField
	index  map[string]int
}

// NewRegistry builds a registry from an ordered field list.
// It panics if a field has no candidates or a name repeats; the catalogue
// is compiled-in data, so a bad entry is a programming error.
func NewRegistry(fields []LogicalField) *Registry {
	r := &Registry{
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			panic("core: registry field with empty name")
		}
		if len(f.Candidates) == 0 {
			panic(fmt.Sprintf("core: field %q has no tag candidates", f.Name))
		}
		if _, dup := r.index[f.Name]; dup {
			panic(fmt.Sprintf("core: duplicate field %q", f.Name))
		}
		r.index[f.Name] = i
	}
	return r
}

// Fields returns the fields in catalogue order.
func (r *Registry) Fields() []LogicalField {
	out := make([]LogicalField, len(r.fields))
	copy(out, r.fields)
	return out
}

// Names returns the field names in catalogue order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Name
	}
	return out
}

// Has reports whether name is a known logical field.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Lookup returns the field definition for name.
func (r *Registry) Lookup(name string) (LogicalField, bool) {
	i, ok := r.index[name]
	if !ok {
		return LogicalField{}, false
	}
	return r.fields[i], true
}

// Resolve returns the tag candidates for name in priority order.
// Unknown names panic: callers are expected to iterate the registry itself
// or validate with Has first.
func (r *Registry) Resolve(name string) []TagID {
	i, ok := r.index[name]
	if !ok {
		panic(fmt.Sprintf("core: unknown field %q", name))
	}
	c := r.fields[i].Candidates
	out := make([]TagID, len(c))
	copy(out, c)
	return out
}

// DefaultRegistry returns the standard IPTC editing catalogue.
// Field order matches the editing form; candidate order is the read
// priority. DateModified carries the FileSystem fallback as its last
// candidate.
func DefaultRegistry() *Registry {
	return NewRegistry([]LogicalField{
		{
			Name: "Headline", Label: "Headline", MaxLength: 256,
			Candidates: []TagID{
				{IPTC, "Headline"},
				{XMPPhotoshop, "Headline"},
				{XMP, "Headline"},
				{XMP, "Title"},
			},
		},
		{
			Name: "Caption-Abstract", Label: "Caption/Abstract", MaxLength: 1000,
			Candidates: []TagID{
				{IPTC, "Caption-Abstract"},
				{XMP, "Description"},
				{EXIF, "ImageDescription"},
			},
		},
		{
			Name: "Credit", Label: "Credit", MaxLength: 32,
			Candidates: []TagID{
				{IPTC, "Credit"},
				{XMP, "Credit"},
				{XMPPhotoshop, "Credit"},
			},
		},
		{
			Name: "ObjectName", Label: "Object Name", MaxLength: 64,
			Candidates: []TagID{
				{IPTC, "ObjectName"},
				{XMP, "Title"},
			},
		},
		{
			Name: "Writer-Editor", Label: "Writer/Editor", MaxLength: 32,
			Candidates: []TagID{
				{IPTC, "Writer-Editor"},
				{XMP, "CaptionWriter"},
				{XMPPhotoshop, "CaptionWriter"},
			},
		},
		{
			Name: "By-line", Label: "By-line", MaxLength: 32,
			Candidates: []TagID{
				{IPTC, "By-line"},
				{XMP, "Creator"},
				{EXIF, "Artist"},
			},
		},
		{
			Name: "By-lineTitle", Label: "By-line Title", MaxLength: 32,
			Candidates: []TagID{
				{IPTC, "By-lineTitle"},
				{XMP, "AuthorsPosition"},
				{XMPPhotoshop, "AuthorsPosition"},
			},
		},
		{
			Name: "Source", Label: "Source", MaxLength: 32,
			Candidates: []TagID{
				{IPTC, "Source"},
				{XMP, "Source"},
				{XMPPhotoshop, "Source"},
			},
		},
		{
			Name: "DateCreated", Label: "Date Created", MaxLength: 10,
			Candidates: []TagID{
				{IPTC, "DateCreated"},
				{XMP, "DateCreated"},
				{XMPPhotoshop, "DateCreated"},
			},
		},
		{
			Name: "DateModified", Label: "Date Modified", MaxLength: 32,
			Candidates: []TagID{
				{EXIF, "ModifyDate"},
				{EXIF, "FileModifyDate"},
				{XMP, "ModifyDate"},
				{ICCProfile, "ProfileDateTime"},
				{FileSystem, "ModifyDate"},
			},
		},
		{
			Name: "CopyrightNotice", Label: "Copyright Notice", MaxLength: 128,
			Candidates: []TagID{
				{IPTC, "CopyrightNotice"},
				{XMP, "Rights"},
				{EXIF, "Copyright"},
			},
		},
		{
			Name: "Contact", Label: "Additional Info", MaxLength: 128,
			Candidates: []TagID{
				{IPTC, "Contact"},
				{XMP, "Contact"},
			},
		},
	})
}
