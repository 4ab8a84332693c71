// Package slog provides logging decorators for tailor services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/tailor"
)

// Ensure LoggingExtractor implements tailor.Extractor.
var _ tailor.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   tailor.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next tailor.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs which strategy won.
func (e *LoggingExtractor) Extract(data []byte) (ext *tailor.Extraction) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"bytes", len(data),
			"method", ext.Method,
			"outcome", ext.Outcome,
			"chars", len([]rune(ext.Text)),
			"attempts", len(ext.Attempts),
			"duration", time.Since(begin),
		)
		for _, a := range ext.Attempts {
			if a.Status == tailor.StageFailed {
				e.logger.Warn("extraction stage failed",
					"method", a.Method,
					"err", a.Error,
				)
			}
		}
	}(time.Now())
	return e.next.Extract(data)
}
