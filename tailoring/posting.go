package tailoring

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/tailor"
)

var _ tailor.JobPostingService = (*PostingFetcher)(nil)

// PostingFetcher fetches a job advertisement and reduces it to Markdown.
type PostingFetcher struct {
	Fetcher tailor.Fetcher

	// Extractors are tried in order until one finds the posting body.
	Extractors []tailor.ContentExtractor

	Converter tailor.Converter
}

// FetchJobPosting implements tailor.JobPostingService.
func (f *PostingFetcher) FetchJobPosting(ctx context.Context, rawURL string) (*tailor.JobPosting, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, tailor.Errorf(tailor.EINVALID, "invalid job posting URL %q", rawURL)
	}

	html, err := f.Fetcher.Fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}

	title, md, err := f.extract(html)
	if err != nil {
		return nil, err
	}

	return &tailor.JobPosting{
		URL:         u.String(),
		Title:       title,
		Description: md,
	}, nil
}

// extract returns the title and Markdown body of the first content that
// converts to non-blank Markdown. ENOTFOUND from one extractor moves on to
// the next; other errors stop the search.
func (f *PostingFetcher) extract(html string) (string, string, error) {
	for _, e := range f.Extractors {
		content, err := e.ExtractContent(html)
		switch {
		case tailor.ErrorCode(err) == tailor.ENOTFOUND:
			continue
		case err != nil:
			return "", "", err
		case content == nil || strings.TrimSpace(content.ContentHTML) == "":
			continue
		}

		md, err := f.Converter.Convert(content.ContentHTML)
		if err != nil {
			return "", "", err
		}
		if strings.TrimSpace(md) != "" {
			return content.Title, md, nil
		}
	}
	return "", "", tailor.Errorf(tailor.EINVALID, "no job description found in page")
}
