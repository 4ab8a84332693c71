package gemini_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/tailor"
	"github.com/fwojciec/tailor/gemini"
	"github.com/fwojciec/tailor/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestAnalyzer_Analyze_ReturnsErrorWhenJobDescriptionEmpty(t *testing.T) {
	t.Parallel()

	a := gemini.NewAnalyzer(nil, nil) // nil client ok for this test

	_, err := a.Analyze(context.Background(), &tailor.AnalysisRequest{ResumeText: "resume"})

	require.Error(t, err)
	assert.Equal(t, tailor.EINVALID, tailor.ErrorCode(err))
	assert.Contains(t, tailor.ErrorMessage(err), "job description required")
}

func TestAnalyzer_Analyze_ReturnsErrorWhenResumeEmpty(t *testing.T) {
	t.Parallel()

	a := gemini.NewAnalyzer(nil, nil)

	_, err := a.Analyze(context.Background(), &tailor.AnalysisRequest{JobDescription: "job", ResumeText: " \n"})

	require.Error(t, err)
	assert.Equal(t, tailor.EINVALID, tailor.ErrorCode(err))
	assert.Contains(t, tailor.ErrorMessage(err), "resume text required")
}

func TestAnalyzer_Analyze_RejectsPromptOverTokenLimit(t *testing.T) {
	t.Parallel()

	var counted string
	counter := &mock.TokenCounter{
		CountTokensFn: func(_ context.Context, text string) (int, error) {
			counted = text
			return 5000, nil
		},
	}
	a := gemini.NewAnalyzer(nil, nil, gemini.WithTokenLimit(counter, 4000))

	_, err := a.Analyze(context.Background(), &tailor.AnalysisRequest{JobDescription: "job", ResumeText: "resume"})

	require.Error(t, err)
	assert.Equal(t, tailor.EINVALID, tailor.ErrorCode(err))
	assert.Contains(t, tailor.ErrorMessage(err), "5000 tokens")
	assert.Contains(t, counted, "<resume>\nresume\n</resume>")
}

func TestAnalyzer_Analyze_PropagatesTokenCounterError(t *testing.T) {
	t.Parallel()

	counter := &mock.TokenCounter{
		CountTokensFn: func(context.Context, string) (int, error) {
			return 0, errors.New("tokenizer unavailable")
		},
	}
	a := gemini.NewAnalyzer(nil, nil, gemini.WithTokenLimit(counter, 10))

	_, err := a.Analyze(context.Background(), &tailor.AnalysisRequest{JobDescription: "job", ResumeText: "resume"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokenizer unavailable")
}

func TestAnalyzer_Analyze_ReturnsContextErrorWhenCanceled(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: ts.URL},
	})
	require.NoError(t, err)
	a := gemini.NewAnalyzer(client, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Analyze(ctx, &tailor.AnalysisRequest{JobDescription: "job", ResumeText: "resume"})

	require.ErrorIs(t, err, context.Canceled)
	assert.NotEqual(t, tailor.EUNAVAILABLE, tailor.ErrorCode(err))
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Equal(t, tailor.AnalysisInstruction, config.SystemInstruction.Parts[0].Text)
}

func TestBuildConfig_RequestsJSON(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, *config.Temperature, 0.001)
}
