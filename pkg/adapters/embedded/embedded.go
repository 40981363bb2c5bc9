// Package embedded implements a read-only core.Backend that decodes
// EXIF/IPTC/XMP metadata directly from the image file, without any external
// tool. It serves as a degraded viewing mode when ExifTool is not
// installed; writes are rejected.
package embedded

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bep/imagemeta"

	"github.com/juren53/tagwriter/pkg/core"
)

// Backend decodes embedded metadata with bep/imagemeta.
type Backend struct{}

// New returns the embedded backend. It has no external dependencies, so
// construction cannot fail.
func New() *Backend {
	return &Backend{}
}

// Read decodes all EXIF, IPTC and XMP tags of the file into a grouped-key
// map compatible with the registry's tag identifiers.
func (b *Backend) Read(ctx context.Context, path string) (core.RawTagMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	format, ok := detectFormat(path)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image format %q", core.ErrParse, filepath.Ext(path))
	}

	raw := make(core.RawTagMap)
	err = imagemeta.Decode(imagemeta.Options{
		R:           f,
		ImageFormat: format,
		Sources:     imagemeta.EXIF | imagemeta.IPTC | imagemeta.XMP,
		HandleTag: func(tag imagemeta.TagInfo) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			ns, ok := namespaceFor(tag.Source)
			if !ok {
				return nil
			}
			key := string(ns) + ":" + tag.Tag
			if v := stringify(tag.Value); v != "" {
				raw[key] = v
			}
			return nil
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", core.ErrParse, err)
	}
	return raw, nil
}

// Write always fails: embedded decoding has no write support.
func (b *Backend) Write(ctx context.Context, path string, pending []core.PendingWrite) error {
	return fmt.Errorf("%w: embedded backend is read-only", core.ErrWriteFailed)
}

func namespaceFor(src imagemeta.Source) (core.Namespace, bool) {
	switch src {
	case imagemeta.EXIF:
		return core.EXIF, true
	case imagemeta.IPTC:
		return core.IPTC, true
	case imagemeta.XMP:
		return core.XMP, true
	}
	return "", false
}

func detectFormat(path string) (imagemeta.ImageFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imagemeta.JPEG, true
	case ".png":
		return imagemeta.PNG, true
	case ".tif", ".tiff":
		return imagemeta.TIFF, true
	case ".webp":
		return imagemeta.WebP, true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, "; ")
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
