package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/tailor"
	"github.com/fwojciec/tailor/mock"
	tailorslog "github.com/fwojciec/tailor/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	req := &tailor.AnalysisRequest{JobDescription: "Go engineer", ResumeText: "Jane Doe"}

	t.Run("logs score and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Analyzer{
			AnalyzeFn: func(ctx context.Context, req *tailor.AnalysisRequest) (*tailor.Analysis, error) {
				return &tailor.Analysis{Skills: []string{"Go", "SQL"}, Summary: "fit", Score: 72}, nil
			},
		}

		analysis, err := tailorslog.NewLoggingAnalyzer(inner, logger).Analyze(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, float64(72), analysis.Score)
		output := buf.String()
		assert.Contains(t, output, "msg=analyze")
		assert.Contains(t, output, "resume_chars=8")
		assert.Contains(t, output, "job_chars=11")
		assert.Contains(t, output, "score=72")
		assert.Contains(t, output, "skills=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Analyzer{
			AnalyzeFn: func(ctx context.Context, req *tailor.AnalysisRequest) (*tailor.Analysis, error) {
				return nil, errors.New("backend down")
			},
		}

		_, err := tailorslog.NewLoggingAnalyzer(inner, logger).Analyze(context.Background(), req)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "err=\"backend down\"")
		assert.NotContains(t, output, "score=")
	})
}
