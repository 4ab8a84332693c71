package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/tailor"
	tailorhttp "github.com/fwojciec/tailor/http"
	"github.com/fwojciec/tailor/jsonschema"
	"github.com/fwojciec/tailor/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validRequest = &tailor.AnalysisRequest{
	JobDescription: "Senior Go engineer",
	ResumeText:     "Jane Doe built Go services",
}

func newParser(t *testing.T) tailor.AnalysisParser {
	t.Helper()
	p, err := jsonschema.NewParser()
	require.NoError(t, err)
	return p
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("implements tailor.Analyzer interface", func(t *testing.T) {
		t.Parallel()
		var _ tailor.Analyzer = tailorhttp.NewAnalyzer("http://example.com", &mock.AnalysisParser{})
	})

	t.Run("posts the request as JSON and parses the response", func(t *testing.T) {
		t.Parallel()

		var gotBody map[string]string
		var gotContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			gotContentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &gotBody)
			_, _ = w.Write([]byte(`[{"skills":["Go"],"summary":"Good fit","score":"88%"}]`))
		}))
		defer server.Close()

		a := tailorhttp.NewAnalyzer(server.URL, newParser(t))

		analysis, err := a.Analyze(context.Background(), validRequest)

		require.NoError(t, err)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, map[string]string{
			"jobDescription": "Senior Go engineer",
			"resumeText":     "Jane Doe built Go services",
		}, gotBody)
		assert.Equal(t, []string{"Go"}, analysis.Skills)
		assert.InDelta(t, 88, analysis.Score, 0.001)
	})

	t.Run("retries server errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"skills":[],"summary":"s","score":1}`))
		}))
		defer server.Close()

		a := tailorhttp.NewAnalyzer(server.URL, newParser(t),
			tailorhttp.WithRetryDelays(time.Millisecond, time.Millisecond))

		_, err := a.Analyze(context.Background(), validRequest)

		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("returns unavailable after exhausting retries", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		a := tailorhttp.NewAnalyzer(server.URL, newParser(t), tailorhttp.WithRetryDelays(time.Millisecond))

		_, err := a.Analyze(context.Background(), validRequest)

		assert.Equal(t, tailor.EUNAVAILABLE, tailor.ErrorCode(err))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		a := tailorhttp.NewAnalyzer(server.URL, newParser(t), tailorhttp.WithRetryDelays(time.Millisecond))

		_, err := a.Analyze(context.Background(), validRequest)

		assert.Equal(t, tailor.EINVALID, tailor.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("rejects responses that break the contract", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message":"Workflow was started"}`))
		}))
		defer server.Close()

		a := tailorhttp.NewAnalyzer(server.URL, newParser(t))

		_, err := a.Analyze(context.Background(), validRequest)

		assert.Equal(t, tailor.EINVALID, tailor.ErrorCode(err))
	})

	t.Run("validates the request before sending", func(t *testing.T) {
		t.Parallel()

		a := tailorhttp.NewAnalyzer("http://non-existent-host.invalid", &mock.AnalysisParser{})

		_, err := a.Analyze(context.Background(), &tailor.AnalysisRequest{ResumeText: "text"})

		assert.Equal(t, tailor.EINVALID, tailor.ErrorCode(err))
		assert.Equal(t, "job description required", tailor.ErrorMessage(err))
	})

	t.Run("requires an endpoint URL", func(t *testing.T) {
		t.Parallel()

		a := tailorhttp.NewAnalyzer("", &mock.AnalysisParser{})

		_, err := a.Analyze(context.Background(), validRequest)

		assert.Equal(t, tailor.EINVALID, tailor.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		a := tailorhttp.NewAnalyzer(server.URL, &mock.AnalysisParser{},
			tailorhttp.WithTimeout(10*time.Millisecond), tailorhttp.WithRetryDelays())

		_, err := a.Analyze(context.Background(), validRequest)

		assert.Equal(t, tailor.EUNAVAILABLE, tailor.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		a := tailorhttp.NewAnalyzer(server.URL, &mock.AnalysisParser{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := a.Analyze(ctx, validRequest)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rate limits consecutive requests", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"skills":[],"summary":"s","score":1}`))
		}))
		defer server.Close()

		a := tailorhttp.NewAnalyzer(server.URL, newParser(t), tailorhttp.WithRateLimit(10))

		_, err := a.Analyze(context.Background(), validRequest)
		require.NoError(t, err)

		start := time.Now()
		_, err = a.Analyze(context.Background(), validRequest)
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})
}
