package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func personSchema() *Schema {
	return &Schema{
		Name: "test-person",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []string{"A", "B", "C"}},
			},
			"required": []string{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"name":"Ada","age":10,"grade":"A"}`, true},
		{"optional omitted", `{"name":"Bo","age":8}`, true},
		{"missing required", `{"name":"Cy"}`, false},
		{"wrong type", `{"name":"Di","age":"ten"}`, false},
		{"bad enum", `{"name":"Ed","age":9,"grade":"F"}`, false},
		{"negative", `{"name":"Fi","age":-1}`, false},
		{"malformed", `{"name":`, false},
		{"empty", ``, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateResponse(personSchema(), json.RawMessage(tc.raw))
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			if assert.True(t, errors.As(err, &inv), "got %v", err) {
				assert.Equal(t, tc.raw, string(inv.Content))
			}
		})
	}
}

func TestValidateResponseNilSchemaAcceptsText(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage("plain text")))
}
