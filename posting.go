package tailor

import (
	"context"
	"strings"
)

// JobPosting is a job advertisement fetched from the web.
type JobPosting struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`

	// Description is the posting body as Markdown.
	Description string `json:"description"`
}

// FullDescription returns the description with the title as a heading,
// ready to use as analysis input.
func (p *JobPosting) FullDescription() string {
	if p.Title == "" || strings.Contains(p.Description, p.Title) {
		return p.Description
	}
	return "# " + p.Title + "\n\n" + p.Description
}

// JobPostingService turns a job advertisement URL into a job description.
type JobPostingService interface {
	// FetchJobPosting returns EINVALID for malformed URLs or pages without
	// a recognizable posting, and EUNAVAILABLE when the page cannot be
	// retrieved.
	FetchJobPosting(ctx context.Context, url string) (*JobPosting, error)
}

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
}

// PostingContent holds the main content of a job posting page.
type PostingContent struct {
	// Title is the posting title from page metadata.
	Title string

	// ContentHTML is the posting body as clean HTML.
	ContentHTML string
}

// ContentExtractor finds the posting body in a page, removing boilerplate.
type ContentExtractor interface {
	// ExtractContent returns ENOTFOUND when the page has no content the
	// extractor recognizes.
	ExtractContent(html string) (*PostingContent, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
