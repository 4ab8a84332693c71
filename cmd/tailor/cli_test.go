package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/tailor/cmd/tailor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"extract", "analyze", "reports", "show", "delete", "patterns", "job", "serve"}

const pdfLike = "%PDF-1.4\nBT (Hello World) Tj (Senior Go Developer) Tj (AB12CD34) Tj (hi) Tj ET"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		helpOutput := stdout.String()
		for _, cmd := range allCommands {
			assert.Contains(t, helpOutput, cmd)
		}
		assert.Contains(t, helpOutput, "Usage:")
		assert.Contains(t, helpOutput, "Flags:")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("extract prints recovered text", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "resume.pdf", pdfLike)
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "unused.db")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", path}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "Hello World Senior Go Developer\n", stdout.String())
		assert.Empty(t, stderr.String())
		assert.Nil(t, m.DB, "extract should not open the database")
	})

	t.Run("verbose extract logs the winning strategy", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "resume.pdf", pdfLike)
		m := main.NewMain()
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"-v", "extract", path}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "msg=extract")
		assert.Contains(t, stderr.String(), "method=delimited")
	})

	t.Run("extract rejects an invalid pattern table", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "resume.pdf", pdfLike)
		patterns := writeFile(t, dir, "patterns.yaml", "harvest:\n  - name: broken\n    patterns: ['(']\n")
		m := main.NewMain()
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", "--patterns", patterns, path}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("analyze saves a report listed by reports", func(t *testing.T) {
		t.Parallel()

		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"skills":["Go"],"summary":"Strong fit","score":88}`))
		}))
		t.Cleanup(backend.Close)

		dir := t.TempDir()
		path := writeFile(t, dir, "jane.pdf", pdfLike)
		dbPath := filepath.Join(dir, "tailor.db")

		m := main.NewMain()
		m.DBPath = dbPath
		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{
			"analyze", path,
			"--job", "Senior Go engineer",
			"--backend", "webhook",
			"--analyze-url", backend.URL,
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Matching Score: 88%")
		assert.Contains(t, stdout.String(), "Saved report")

		m2 := main.NewMain()
		m2.DBPath = dbPath
		stdout = &bytes.Buffer{}
		err = m2.Run(context.Background(), []string{"reports"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "jane.pdf")
		assert.Contains(t, stdout.String(), "88%")
	})

	t.Run("analyze without an endpoint explains how to configure one", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "jane.pdf", pdfLike)
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"analyze", path, "--job", "Go", "--backend", "webhook", "--analyze-url", "",
		}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "TAILOR_ANALYZE_URL")
	})

	t.Run("reports on an empty database", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"reports"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No reports found")
	})
}
