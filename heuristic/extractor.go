package heuristic

import (
	"fmt"
	"sync"

	"github.com/fwojciec/tailor"
)

var _ tailor.Extractor = (*Extractor)(nil)

type stage struct {
	strategy Strategy
	outcome  tailor.Outcome
}

// Extractor runs the strategy chain in priority order and reports which
// strategy produced the text. Extractor is safe for concurrent use.
type Extractor struct {
	patterns *PatternLibrary
	stages   []stage
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPatternLibrary replaces the built-in vocabulary used by the
// harvesting strategies.
func WithPatternLibrary(lib *PatternLibrary) Option {
	return func(e *Extractor) {
		if lib != nil {
			e.patterns = lib
		}
	}
}

// NewExtractor returns an Extractor with the default strategy chain.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{patterns: DefaultPatternLibrary()}
	for _, opt := range opts {
		opt(e)
	}
	e.stages = []stage{
		{DelimitedStrategy{}, tailor.OutcomeExtracted},
		{&PatternHarvestStrategy{Groups: e.patterns.Harvest()}, tailor.OutcomeExtracted},
		{CleanupStrategy{}, tailor.OutcomeExtracted},
		{TrigramStrategy{}, tailor.OutcomeLowConfidence},
		{&NameHarvestStrategy{Groups: e.patterns.Names()}, tailor.OutcomeLowConfidence},
	}
	return e
}

// Extract returns readable text recovered from data. It never fails: when no
// strategy succeeds the result carries the Fallback text and OutcomeEmpty.
func (e *Extractor) Extract(data []byte) (ext *tailor.Extraction) {
	ext = &tailor.Extraction{}
	defer func() {
		if r := recover(); r != nil {
			ext.Attempts = append(ext.Attempts, tailor.Attempt{
				Method: tailor.MethodFallback,
				Status: tailor.StageFailed,
				Error:  fmt.Sprint(r),
			})
			useFallback(ext)
		}
	}()

	text, err := decode(data)
	if err != nil {
		ext.Attempts = append(ext.Attempts, tailor.Attempt{
			Method: tailor.MethodDecode,
			Status: tailor.StageFailed,
			Error:  err.Error(),
		})
		useFallback(ext)
		return ext
	}

	for _, st := range e.stages {
		res := runStrategy(st.strategy, text)
		attempt := tailor.Attempt{Method: st.strategy.Method(), Status: res.Status}
		if res.Err != nil {
			attempt.Error = res.Err.Error()
		}
		ext.Attempts = append(ext.Attempts, attempt)
		if res.Status == tailor.StageAccepted {
			ext.Text = res.Text
			ext.Method = st.strategy.Method()
			ext.Outcome = st.outcome
			return ext
		}
	}

	useFallback(ext)
	return ext
}

func useFallback(ext *tailor.Extraction) {
	ext.Text = Fallback
	ext.Method = tailor.MethodFallback
	ext.Outcome = tailor.OutcomeEmpty
}

var defaultExtractor = sync.OnceValue(func() *Extractor { return NewExtractor() })

// Extract runs the default strategy chain over data and returns the text.
// The result is never empty.
func Extract(data []byte) string {
	return defaultExtractor().Extract(data).Text
}
