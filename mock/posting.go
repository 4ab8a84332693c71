package mock

import (
	"context"

	"github.com/fwojciec/tailor"
)

var (
	_ tailor.Fetcher           = (*Fetcher)(nil)
	_ tailor.ContentExtractor  = (*ContentExtractor)(nil)
	_ tailor.Converter         = (*Converter)(nil)
	_ tailor.JobPostingService = (*JobPostingService)(nil)
)

// Fetcher is a mock implementation of tailor.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

// ContentExtractor is a mock implementation of tailor.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (*tailor.PostingContent, error)
}

func (e *ContentExtractor) ExtractContent(html string) (*tailor.PostingContent, error) {
	return e.ExtractContentFn(html)
}

// Converter is a mock implementation of tailor.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// JobPostingService is a mock implementation of tailor.JobPostingService.
type JobPostingService struct {
	FetchJobPostingFn func(ctx context.Context, url string) (*tailor.JobPosting, error)
}

func (s *JobPostingService) FetchJobPosting(ctx context.Context, url string) (*tailor.JobPosting, error) {
	return s.FetchJobPostingFn(ctx, url)
}
