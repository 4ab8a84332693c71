package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tailor"
)

// Ensure LoggingAnalyzer implements tailor.Analyzer.
var _ tailor.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with debug logging.
type LoggingAnalyzer struct {
	next   tailor.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next tailor.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the operation.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, req *tailor.AnalysisRequest) (analysis *tailor.Analysis, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"resume_chars", len([]rune(req.ResumeText)),
			"job_chars", len([]rune(req.JobDescription)),
			"duration", time.Since(begin),
		}
		if analysis != nil {
			attrs = append(attrs, "score", analysis.Score, "skills", len(analysis.Skills))
		}
		attrs = append(attrs, "err", err)
		a.logger.Info("analyze", attrs...)
	}(time.Now())
	return a.next.Analyze(ctx, req)
}
