package main_test

import (
	"bytes"
	"context"
	"testing"

	main "github.com/fwojciec/tailor/cmd/tailor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists built-in groups", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		err := (&main.PatternsCmd{}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "harvest:")
		assert.Contains(t, output, "names:")
		for _, group := range []string{"skills", "companies", "technologies", "bigrams", "trigrams"} {
			assert.Contains(t, output, group)
		}
	})

	t.Run("prints expressions from a custom table", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "patterns.yaml",
			"harvest:\n  - name: langs\n    patterns: ['\\bGo\\b', 'Rust']\nnames:\n  - name: roles\n    patterns: ['Engineer']\n")
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		err := (&main.PatternsCmd{Patterns: path, Full: true}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "langs")
		assert.Contains(t, output, "2 patterns")
		assert.Contains(t, output, `\bGo\b`)
		assert.Contains(t, output, "roles")
		assert.NotContains(t, output, "skills")
	})

	t.Run("returns error for invalid table", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "patterns.yaml", "harvest: []\n")
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr}

		err := (&main.PatternsCmd{Patterns: path}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
