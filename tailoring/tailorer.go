// Package tailoring orchestrates resume tailoring. It coordinates text
// extraction, analysis and report storage.
package tailoring

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/tailor"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents extracted in parallel when
// Concurrency is not set.
const DefaultConcurrency = 4

var _ tailor.TailorService = (*Tailorer)(nil)

// Tailorer turns uploaded resumes into tailoring reports.
type Tailorer struct {
	Extractor tailor.Extractor
	Analyzer  tailor.Analyzer

	// Reports stores completed runs. Optional.
	Reports tailor.ReportService

	// AllowFallback lets the placeholder document through to analysis
	// when nothing could be read from the upload.
	AllowFallback bool

	Concurrency int
}

// Tailor extracts the resume text, analyzes it against the job
// description and stores the resulting report when Reports is set.
//
// Returns EINVALID when the input is incomplete or the document yielded no
// readable text and AllowFallback is false.
func (t *Tailorer) Tailor(ctx context.Context, in *tailor.TailorRequest) (*tailor.Report, error) {
	if strings.TrimSpace(in.JobDescription) == "" {
		return nil, tailor.Errorf(tailor.EINVALID, "job description required")
	}
	if len(in.Data) == 0 {
		return nil, tailor.Errorf(tailor.EINVALID, "resume file is empty")
	}

	ext := t.Extractor.Extract(in.Data)
	if ext.Outcome == tailor.OutcomeEmpty && !t.AllowFallback {
		return nil, tailor.Errorf(tailor.EINVALID,
			"no readable text found in %s; the document may be scanned, compressed or encrypted", displayName(in.FileName))
	}

	analysis, err := t.Analyzer.Analyze(ctx, &tailor.AnalysisRequest{
		JobDescription: in.JobDescription,
		ResumeText:     ext.Text,
	})
	if err != nil {
		return nil, err
	}

	report := &tailor.Report{
		FileName:       in.FileName,
		ContentHash:    ContentHash(in.Data),
		Method:         ext.Method,
		Outcome:        ext.Outcome,
		JobDescription: in.JobDescription,
		ResumeText:     ext.Text,
		Analysis:       *analysis,
	}

	if t.Reports != nil {
		if err := t.Reports.CreateReport(ctx, report); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}

	return report, nil
}

// Document is a named document blob for batch extraction.
type Document struct {
	Name string
	Data []byte
}

// ExtractAll extracts every document with bounded concurrency. Results are
// returned in input order. The only error is context cancellation.
func (t *Tailorer) ExtractAll(ctx context.Context, docs []Document, progress ProgressFunc) ([]*tailor.Extraction, error) {
	concurrency := t.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(docs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	results := make([]*tailor.Extraction, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ext := t.Extractor.Extract(doc.Data)
			results[i] = ext
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: int(completed.Add(1)),
					Total:     total,
					Name:      doc.Name,
					Outcome:   ext.Outcome,
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return results, nil
}

// ContentHash returns the xxhash digest of a document, used to group
// reports generated from the same upload.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

func displayName(name string) string {
	if name == "" {
		return "upload"
	}
	return name
}
