// Package http provides HTTP transport for tailoring: a client for remote
// analysis endpoints and a chi server exposing extraction and tailoring.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/tailor"
	"golang.org/x/time/rate"
)

// DefaultAnalyzeTimeout is the default timeout for a single analysis request.
// Language-model backed endpoints routinely take tens of seconds.
const DefaultAnalyzeTimeout = 60 * time.Second

// maxResponseBytes caps how much of an analysis response is read.
const maxResponseBytes = 1 << 20

// DefaultRetryDelays returns the backoff delays between analysis retries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// Ensure Analyzer implements tailor.Analyzer at compile time.
var _ tailor.Analyzer = (*Analyzer)(nil)

// Analyzer posts analysis requests as JSON to a configured endpoint, such
// as a workflow automation webhook, and parses the response.
type Analyzer struct {
	url     string
	parser  tailor.AnalysisParser
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	delays  []time.Duration
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTimeout sets the timeout for each HTTP request.
// Defaults to DefaultAnalyzeTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		a.timeout = d
	}
}

// WithRateLimit limits outgoing requests to rps per second, without bursting.
func WithRateLimit(rps float64) Option {
	return func(a *Analyzer) {
		if rps > 0 {
			a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithRetryDelays sets the delays between attempts. The number of delays is
// the number of retries; no delays disables retrying.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(a *Analyzer) {
		a.delays = delays
	}
}

// NewAnalyzer creates an Analyzer that posts to url and decodes responses
// with parser.
func NewAnalyzer(url string, parser tailor.AnalysisParser, opts ...Option) *Analyzer {
	a := &Analyzer{
		url:     url,
		parser:  parser,
		timeout: DefaultAnalyzeTimeout,
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.client = &http.Client{
		Timeout: a.timeout,
	}

	return a
}

// Analyze sends req to the endpoint. Server errors, throttling and transport
// failures are retried; other client errors are not.
func (a *Analyzer) Analyze(ctx context.Context, req *tailor.AnalysisRequest) (*tailor.Analysis, error) {
	if a.url == "" {
		return nil, tailor.Errorf(tailor.EINVALID, "analysis endpoint URL required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis request: %w", err)
	}

	data, err := a.postWithRetry(ctx, body)
	if err != nil {
		return nil, err
	}

	return a.parser.ParseAnalysis(data)
}

func (a *Analyzer) postWithRetry(ctx context.Context, body []byte) ([]byte, error) {
	maxAttempts := len(a.delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if a.limiter != nil {
			if err := a.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		data, err := a.post(ctx, body)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !retryable(ctx, err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.delays[attempt]):
		}
	}

	return nil, classify(ctx, lastErr)
}

func (a *Analyzer) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode}
	}

	return data, nil
}

// statusError reports a non-2xx response from the endpoint.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("analysis endpoint returned HTTP %d", e.code)
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	return true
}

// classify converts a final transport error into an application error.
func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var se *statusError
	if errors.As(err, &se) {
		if se.code >= 500 || se.code == http.StatusTooManyRequests {
			return tailor.Errorf(tailor.EUNAVAILABLE, "%s", se.Error())
		}
		return tailor.Errorf(tailor.EINVALID, "analysis endpoint rejected the request: HTTP %d", se.code)
	}
	return tailor.Errorf(tailor.EUNAVAILABLE, "analysis endpoint unreachable: %v", err)
}
