// Package fs writes the instruction catalog to disk for the browser page.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/a64doc"
)

// scriptPrefix declares the global the search page reads the catalog from.
const scriptPrefix = "const instrs = "

// FormatScript renders records as a JavaScript file assigning the catalog to
// a single constant.
func FormatScript(records []*a64doc.Record) ([]byte, error) {
	if records == nil {
		records = []*a64doc.Record{}
	}

	var buf bytes.Buffer
	buf.WriteString(scriptPrefix)

	// Templates are full of angle brackets; keep them readable.
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}

	// Encode terminates the value with a newline.
	buf.Truncate(buf.Len() - 1)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// Ensure ScriptWriter implements a64doc.CatalogWriter at compile time.
var _ a64doc.CatalogWriter = (*ScriptWriter)(nil)

// ScriptWriter writes the catalog script with atomic replace semantics.
// The script is written to dir/name.tmp and renamed to dir/name once it is
// complete, so readers never observe a partial file.
type ScriptWriter struct {
	dir  string
	name string
}

// NewScriptWriter creates a new ScriptWriter.
func NewScriptWriter(dir, name string) *ScriptWriter {
	return &ScriptWriter{dir: dir, name: name}
}

// Path returns the final location of the script.
func (w *ScriptWriter) Path() string {
	return filepath.Join(w.dir, w.name)
}

func (w *ScriptWriter) tempPath() string {
	return filepath.Join(w.dir, w.name+".tmp")
}

// WriteCatalog formats records and replaces the script.
func (w *ScriptWriter) WriteCatalog(ctx context.Context, records []*a64doc.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := FormatScript(records)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(w.tempPath(), content, 0644); err != nil {
		return err
	}

	if err := os.Rename(w.tempPath(), w.Path()); err != nil {
		os.Remove(w.tempPath())
		return err
	}
	return nil
}
