package mock

import (
	"context"

	"github.com/fwojciec/tailor"
)

var (
	_ tailor.Analyzer       = (*Analyzer)(nil)
	_ tailor.AnalysisParser = (*AnalysisParser)(nil)
)

// Analyzer is a mock implementation of tailor.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, req *tailor.AnalysisRequest) (*tailor.Analysis, error)
}

func (a *Analyzer) Analyze(ctx context.Context, req *tailor.AnalysisRequest) (*tailor.Analysis, error) {
	return a.AnalyzeFn(ctx, req)
}

// AnalysisParser is a mock implementation of tailor.AnalysisParser.
type AnalysisParser struct {
	ParseAnalysisFn func(data []byte) (*tailor.Analysis, error)
}

func (p *AnalysisParser) ParseAnalysis(data []byte) (*tailor.Analysis, error) {
	return p.ParseAnalysisFn(data)
}
