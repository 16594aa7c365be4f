package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	raw, err := Schema()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", doc["$schema"])
	assert.Equal(t, SchemaID, doc["$id"])

	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"word_start", "word_continuation", "lines", "max_raw_lines", "messages_only", "notice_template", "key_backward"} {
		assert.Contains(t, props, key)
	}
	assert.Equal(t, false, doc["additionalProperties"])
}

func TestValidateWithSchema(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		body  string
		valid bool
	}{
		{"valid yaml", "c.yml", "lines: 20\nmessages_only: false\n", true},
		{"valid toml", "c.toml", "lines = 20\nnick = \"gopher\"\n", true},
		{"valid json", "c.json", `{"word_start": "\\b\\w+"}`, true},
		{"unknown key", "c.yml", "line: 20\n", false},
		{"wrong type", "c.yml", "lines: lots\n", false},
		{"below minimum", "c.json", `{"lines": 0}`, false},
		{"broken yaml", "c.yml", "lines: [", false},
		{"broken json", "c.json", `{"lines":`, false},
		{"broken toml", "c.toml", "lines = = 3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateWithSchema(tt.path, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, "%v", result.Errors)
			if !tt.valid {
				assert.NotEmpty(t, result.Errors)
			}
		})
	}
}

func TestValidateWithSchema_UnsupportedFormat(t *testing.T) {
	_, err := ValidateWithSchema("c.ini", []byte("x"))
	assert.Error(t, err)
}
