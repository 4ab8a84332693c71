package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/tailor"
	"github.com/fwojciec/tailor/tailoring"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	job := c.Job
	if c.JobFile != "" {
		data, err := os.ReadFile(c.JobFile)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		job = string(data)
	}
	if c.JobURL != "" {
		posting, err := deps.Postings.FetchJobPosting(deps.Ctx, c.JobURL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tailor.ErrorMessage(err))
			return err
		}
		job = posting.FullDescription()
	}
	if strings.TrimSpace(job) == "" {
		fmt.Fprintln(deps.Stderr, "error: job description required. Use --job, --job-file or --job-url")
		return tailor.Errorf(tailor.EINVALID, "job description required")
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	t := &tailoring.Tailorer{
		Extractor:     deps.Extractor,
		Analyzer:      deps.Analyzer,
		AllowFallback: c.AllowFallback,
	}
	if !c.NoSave {
		t.Reports = deps.Reports
	}

	report, err := t.Tailor(deps.Ctx, &tailor.TailorRequest{
		FileName:       filepath.Base(c.File),
		Data:           data,
		JobDescription: job,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tailor.ErrorMessage(err))
		if strings.Contains(tailor.ErrorMessage(err), "no readable text") {
			fmt.Fprintln(deps.Stderr, "Hint: Use --allow-fallback to analyze anyway")
		}
		return err
	}

	if report.Outcome == tailor.OutcomeEmpty {
		fmt.Fprintln(deps.Stderr, "warning: no readable text was found; the analysis used the placeholder resume")
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprint(deps.Stdout, tailor.FormatAnalysis(&report.Analysis))
	if report.ID != "" {
		fmt.Fprintf(deps.Stdout, "\nSaved report %s\n", report.ID)
	}
	return nil
}
