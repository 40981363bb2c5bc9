package core

import (
	"reflect"
	"testing"
)

func TestDefaultRegistryStable(t *testing.T) {
	reg := DefaultRegistry()

	if len(reg.Fields()) != 12 {
		t.Fatalf("expected 12 fields, got %d", len(reg.Fields()))
	}

	// Every field resolves to a non-empty candidate list, and resolution is
	// order-stable across calls.
	for _, name := range reg.Names() {
		first := reg.Resolve(name)
		if len(first) == 0 {
			t.Errorf("field %q has no candidates", name)
		}
		second := reg.Resolve(name)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("field %q: resolution not stable", name)
		}
	}
}

func TestRegistryPriorityOrder(t *testing.T) {
	reg := DefaultRegistry()

	dateCreated := reg.Resolve("DateCreated")
	want := []TagID{
		{IPTC, "DateCreated"},
		{XMP, "DateCreated"},
		{XMPPhotoshop, "DateCreated"},
	}
	if !reflect.DeepEqual(dateCreated, want) {
		t.Errorf("DateCreated candidates = %v, want %v", dateCreated, want)
	}

	dateModified := reg.Resolve("DateModified")
	last := dateModified[len(dateModified)-1]
	if last.Namespace != FileSystem {
		t.Errorf("DateModified should end with the FileSystem fallback, got %v", last)
	}
}

func TestRegistryResolveUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown field")
		}
	}()
	DefaultRegistry().Resolve("NoSuchField")
}

func TestTagIDString(t *testing.T) {
	tag := TagID{IPTC, "Headline"}
	if tag.String() != "IPTC:Headline" {
		t.Errorf("got %q", tag.String())
	}
	tag = TagID{XMPPhotoshop, "CaptionWriter"}
	if tag.String() != "XMP-photoshop:CaptionWriter" {
		t.Errorf("got %q", tag.String())
	}
}

func TestNewRegistryValidation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for field without candidates")
		}
	}()
	NewRegistry([]LogicalField{{Name: "Empty"}})
}
