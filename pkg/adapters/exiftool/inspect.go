package exiftool

import (
	"fmt"
	"sort"

	goexiftool "github.com/barasher/go-exiftool"

	"github.com/juren53/tagwriter/pkg/core"
)

// RawTag is one tag as reported by the tool, ungrouped.
type RawTag struct {
	Name  string
	Value string
}

// Inspector dumps every tag the tool knows about a file, for the "show me
// everything" view. It keeps a stay-open ExifTool process, so Close it when
// done.
type Inspector struct {
	et *goexiftool.Exiftool
}

// NewInspector starts the stay-open process.
func NewInspector() (*Inspector, error) {
	et, err := goexiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrToolUnavailable, err)
	}
	return &Inspector{et: et}, nil
}

// Inspect returns all tags of the file sorted by name.
func (i *Inspector) Inspect(path string) ([]RawTag, error) {
	infos := i.et.ExtractMetadata(path)
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: no output for %s", core.ErrParse, path)
	}
	fi := infos[0]
	if fi.Err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrParse, fi.Err)
	}

	tags := make([]RawTag, 0, len(fi.Fields))
	for name, value := range fi.Fields {
		tags = append(tags, RawTag{Name: name, Value: stringify(value)})
	}
	sort.Slice(tags, func(a, b int) bool { return tags[a].Name < tags[b].Name })
	return tags, nil
}

// Close terminates the underlying process.
func (i *Inspector) Close() {
	i.et.Close()
}
