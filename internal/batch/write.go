package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsawler/pdfoutline/internal/schema"
	"github.com/tsawler/pdfoutline/model"
)

// Encode returns the JSON form of result: two-space indentation, UTF-8
// without HTML escaping and a trailing newline
func Encode(result model.DocumentResult) ([]byte, error) {
	if result.Outline == nil {
		result.Outline = []model.OutlineEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return buf.Bytes(), nil
}

func validate(result model.DocumentResult) error {
	data, err := Encode(result)
	if err != nil {
		return err
	}
	return schema.ValidateJSON(data)
}

// writeResult writes result to path through a temporary file in the same
// directory, so readers never observe a partial file
func writeResult(path string, result model.DocumentResult) error {
	data, err := Encode(result)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to rename %s: %w", tmpName, err)
	}
	return nil
}
