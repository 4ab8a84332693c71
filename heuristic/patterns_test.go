package heuristic_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/tailor"
	"github.com/fwojciec/tailor/heuristic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPatternLibrary(t *testing.T) {
	t.Parallel()

	t.Run("loads groups in declaration order", func(t *testing.T) {
		t.Parallel()

		lib, err := heuristic.LoadPatternLibrary(strings.NewReader(`
harvest:
  - name: first
    patterns: ['a+', 'b+']
  - name: second
    patterns: ['c']
names:
  - name: people
    patterns: ['[A-Z][a-z]+']
`))

		require.NoError(t, err)
		harvest := lib.Harvest()
		require.Len(t, harvest, 2)
		assert.Equal(t, "first", harvest[0].Name)
		assert.Len(t, harvest[0].Patterns, 2)
		assert.Equal(t, "second", harvest[1].Name)
		require.Len(t, lib.Names(), 1)
		assert.Equal(t, "people", lib.Names()[0].Name)
	})

	tests := []struct {
		name  string
		input string
	}{
		{"empty document", ""},
		{"unknown section", "extras:\n  - name: x\n    patterns: ['x']\n"},
		{"invalid regexp", "harvest:\n  - name: bad\n    patterns: ['(unclosed']\n"},
		{"unnamed group", "harvest:\n  - patterns: ['x']\n"},
		{"group without patterns", "names:\n  - name: empty\n"},
		{"empty pattern", "names:\n  - name: blank\n    patterns: ['']\n"},
		{"no groups", "harvest: []\nnames: []\n"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := heuristic.LoadPatternLibrary(strings.NewReader(tt.input))

			require.Error(t, err)
			assert.Equal(t, tailor.EINVALID, tailor.ErrorCode(err))
		})
	}
}

func TestDefaultPatternLibrary(t *testing.T) {
	t.Parallel()

	lib := heuristic.DefaultPatternLibrary()

	var harvest []string
	for _, g := range lib.Harvest() {
		harvest = append(harvest, g.Name)
	}
	assert.Equal(t, []string{"names", "locations", "titles", "skills", "education", "companies", "technologies", "sections", "actions"}, harvest)
	assert.Len(t, lib.Names(), 3)
	assert.Same(t, lib, heuristic.DefaultPatternLibrary())
}
