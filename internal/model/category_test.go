package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_FixedSet(t *testing.T) {
	categories := Categories()
	require.Len(t, categories, 9)

	seen := make(map[Category]bool, len(categories))
	for _, c := range categories {
		assert.True(t, c.Valid(), "category %q", c)
		assert.False(t, seen[c], "duplicate category %q", c)
		seen[c] = true
	}
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryFood.Valid())
	assert.True(t, CategoryOther.Valid())
	assert.False(t, Category("snacks").Valid())
	assert.False(t, Category("").Valid())
	assert.False(t, Category("Food").Valid())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"food", CategoryFood},
		{"FOOD", CategoryFood},
		{"  transport\n", CategoryTransport},
		{"Entertainment", CategoryEntertainment},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}

	for _, input := range []string{"", "snacks", "food, shopping"} {
		_, err := ParseCategory(input)
		assert.Error(t, err, "input %q", input)
	}
}
