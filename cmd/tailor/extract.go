package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/tailor"
	"github.com/fwojciec/tailor/fs"
	"github.com/fwojciec/tailor/tailoring"
)

type extractOutput struct {
	File string `json:"file"`
	*tailor.Extraction
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	docs := make([]tailoring.Document, 0, len(c.Files))
	for _, path := range c.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		docs = append(docs, tailoring.Document{Name: path, Data: data})
	}

	var mu sync.Mutex
	progress := func(event tailoring.ProgressEvent) {
		if len(docs) < 2 || event.Type != tailoring.ProgressCompleted {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(deps.Stderr, "  [%d/%d] %s (%s)\n", event.Completed, event.Total, event.Name, event.Outcome)
	}

	t := &tailoring.Tailorer{Extractor: deps.Extractor, Concurrency: c.Concurrency}
	results, err := t.ExtractAll(deps.Ctx, docs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tailor.ErrorMessage(err))
		return err
	}

	for i, ext := range results {
		if ext.Outcome == tailor.OutcomeEmpty {
			fmt.Fprintf(deps.Stderr, "warning: no readable text in %s; output is the placeholder resume\n", docs[i].Name)
		}
	}

	if c.Out != "" {
		return c.write(deps, docs, results)
	}

	if c.JSON {
		out := make([]extractOutput, len(results))
		for i, ext := range results {
			out[i] = extractOutput{File: docs[i].Name, Extraction: ext}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, ext := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintf(deps.Stdout, "==> %s (%s, %s) <==\n", docs[i].Name, ext.Method, ext.Outcome)
		}
		fmt.Fprintln(deps.Stdout, ext.Text)
	}
	return nil
}

// write stores every extraction under c.Out, replacing the directory only
// when all files were written.
func (c *ExtractCmd) write(deps *Dependencies, docs []tailoring.Document, results []*tailor.Extraction) error {
	out := filepath.Clean(c.Out)
	store := fs.NewStore(filepath.Dir(out), filepath.Base(out))
	for i, ext := range results {
		if err := store.WriteExtraction(docs[i].Name, ext); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", tailor.ErrorMessage(err))
			return err
		}
	}
	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d files to %s\n", len(results), out)
	return nil
}
