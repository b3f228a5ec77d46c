package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/karyoview/karyoview/pkg/karyotype"
)

// WriteJSON encodes ds as indented JSON to w. The output can be read back
// with [ReadJSON].
func WriteJSON(ds *karyotype.Dataset, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes ds to a JSON file at path.
func ExportJSON(ds *karyotype.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(ds, f)
}
