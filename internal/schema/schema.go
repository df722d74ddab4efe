// Package schema validates outline JSON against the output contract
// embedded in outline.schema.json.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tsawler/pdfoutline/model"
)

//go:embed outline.schema.json
var outlineSchema []byte

const schemaURL = "outline.schema.json"

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(outlineSchema)); err != nil {
		return nil, fmt.Errorf("failed to load outline schema: %w", err)
	}
	s, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile outline schema: %w", err)
	}
	return s, nil
})

// Raw returns the embedded schema document
func Raw() []byte {
	return bytes.Clone(outlineSchema)
}

// ValidateJSON checks an encoded outline against the schema
func ValidateJSON(data []byte) error {
	s, err := compiled()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode outline JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("outline does not match schema: %w", err)
	}
	return nil
}

// Validate encodes result and checks it against the schema
func Validate(result model.DocumentResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode outline: %w", err)
	}
	return ValidateJSON(data)
}
