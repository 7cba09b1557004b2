package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain json", `{"category": "food"}`, "food"},
		{"json with whitespace", "  {\"category\":\"transport\"}\n", "transport"},
		{"json fence", "```json\n{\"category\": \"shopping\"}\n```", "shopping"},
		{"bare fence", "```\n{\"category\": \"medical\"}\n```", "medical"},
		{"bare word", "entertainment", "entertainment"},
		{"bare word with whitespace", "  housing\n", "housing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCategoryContent(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategoryContent_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"empty category field", `{"category": ""}`},
		{"wrong field", `{"label": "food"}`},
		{"free text", "I think this merchant sells food"},
		{"unexpected json shape", `{"categories": ["food", "shopping"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCategoryContent(tt.content)
			assert.Error(t, err)
		})
	}
}
