package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/tailor"
	"github.com/fwojciec/tailor/mock"
	tailorslog "github.com/fwojciec/tailor/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs method outcome and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(data []byte) *tailor.Extraction {
				return &tailor.Extraction{
					Text:    "Jane Doe",
					Method:  tailor.MethodDelimited,
					Outcome: tailor.OutcomeExtracted,
					Attempts: []tailor.Attempt{
						{Method: tailor.MethodDelimited, Status: tailor.StageAccepted},
					},
				}
			},
		}

		ext := tailorslog.NewLoggingExtractor(inner, logger).Extract([]byte("0123456789"))

		assert.Equal(t, "Jane Doe", ext.Text)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "bytes=10")
		assert.Contains(t, output, "method=delimited")
		assert.Contains(t, output, "outcome=extracted")
		assert.Contains(t, output, "chars=8")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "stage failed")
	})

	t.Run("warns about failed stages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(data []byte) *tailor.Extraction {
				return &tailor.Extraction{
					Text:    "placeholder",
					Method:  tailor.MethodFallback,
					Outcome: tailor.OutcomeEmpty,
					Attempts: []tailor.Attempt{
						{Method: tailor.MethodCleanup, Status: tailor.StageFailed, Error: "boom"},
					},
				}
			},
		}

		tailorslog.NewLoggingExtractor(inner, logger).Extract(nil)

		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "method=cleanup")
		assert.Contains(t, output, "err=boom")
	})
}
