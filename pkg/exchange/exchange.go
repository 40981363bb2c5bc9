// Package exchange serializes a metadata record to and from standalone
// JSON documents, independent of any image file. Exports are flat
// field→value objects; imports tolerate unknown keys and the legacy
// wrapped form.
package exchange

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/juren53/tagwriter/pkg/core"
)

// Export writes the record as a flat JSON object, one key per logical
// field, atomically (temp file + rename).
func Export(rec *core.Record, path string) error {
	data, err := json.MarshalIndent(rec.Values(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Import reads a JSON document and builds a fresh record from it. Unknown
// keys are ignored, missing fields come back empty. On any read or decode
// failure it returns core.ErrImport and no record, so the caller's current
// record stays untouched.
//
// Both the flat form and the legacy wrapped form
// ({"metadata": {...}, ...}) are accepted.
func Import(reg *core.Registry, path string) (*core.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrImport, err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrImport, err)
	}

	// Legacy exports nest the fields under "metadata".
	if nested, ok := payload["metadata"].(map[string]any); ok {
		payload = nested
	}

	rec := core.NewRecord(reg)
	for key, value := range payload {
		if !reg.Has(key) {
			continue
		}
		s, ok := value.(string)
		if !ok {
			s = fmt.Sprint(value)
		}
		if err := rec.Set(key, s); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrImport, err)
		}
	}
	return rec, nil
}
