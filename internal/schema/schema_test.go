package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfoutline/model"
)

func TestValidateResult(t *testing.T) {
	result := model.DocumentResult{
		Title: "Annual Report",
		Outline: []model.OutlineEntry{
			{Level: model.LevelH1, Text: "Introduction", Page: 1},
			{Level: model.LevelH2, Text: "1.1 Background", Page: 1},
			{Level: model.LevelH3, Text: "Überblick", Page: 2},
		},
	}
	require.NoError(t, Validate(result))
	require.NoError(t, Validate(model.EmptyResult()))
}

func TestValidateRejectsNonHeadingLevel(t *testing.T) {
	result := model.EmptyResult()
	result.Outline = append(result.Outline, model.OutlineEntry{Level: model.LevelBody, Text: "x", Page: 1})

	assert.Error(t, Validate(result))
}

func TestValidateRejectsNullOutline(t *testing.T) {
	assert.Error(t, Validate(model.DocumentResult{Title: "No outline"}))
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"empty", `{"title":"","outline":[]}`, true},
		{"entry", `{"title":"T","outline":[{"level":"H2","text":"Scope","page":3}]}`, true},
		{"missing title", `{"outline":[]}`, false},
		{"unknown level", `{"title":"","outline":[{"level":"H4","text":"Scope","page":1}]}`, false},
		{"page zero", `{"title":"","outline":[{"level":"H1","text":"Scope","page":0}]}`, false},
		{"fractional page", `{"title":"","outline":[{"level":"H1","text":"Scope","page":1.5}]}`, false},
		{"empty text", `{"title":"","outline":[{"level":"H1","text":"","page":1}]}`, false},
		{"extra field", `{"title":"","outline":[],"pages":4}`, false},
		{"not json", `{"title":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON([]byte(tt.input))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRaw(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(Raw(), &doc))
	assert.Equal(t, "object", doc["type"])
}
