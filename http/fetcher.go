package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/tailor"
)

// DefaultFetchTimeout is the default timeout for job posting requests.
const DefaultFetchTimeout = 10 * time.Second

// MaxPageBytes caps the size of a fetched page.
const MaxPageBytes = 5 << 20

// UserAgent identifies fetch requests.
const UserAgent = "tailor/1.0 (+https://github.com/fwojciec/tailor)"

// Ensure Fetcher implements tailor.Fetcher at compile time.
var _ tailor.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages over plain HTTP. It does not execute
// JavaScript.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Client errors map to EINVALID, server and transport errors to EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", tailor.Errorf(tailor.EINVALID, "invalid URL %q", url)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", tailor.Errorf(tailor.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return "", tailor.Errorf(tailor.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", tailor.Errorf(tailor.EINVALID, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes))
	if err != nil {
		return "", tailor.Errorf(tailor.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}
