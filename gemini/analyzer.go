// Package gemini implements tailor.Analyzer using Google Gemini.
package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/tailor"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Analyzer implements tailor.Analyzer at compile time.
var _ tailor.Analyzer = (*Analyzer)(nil)

// Analyzer asks Gemini for a JSON analysis and decodes it with parser.
type Analyzer struct {
	client    *genai.Client
	parser    tailor.AnalysisParser
	model     string
	tokens    tailor.TokenCounter
	maxTokens int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(a *Analyzer) {
		if model != "" {
			a.model = model
		}
	}
}

// WithTokenLimit rejects prompts longer than max tokens as counted by
// counter. A non-positive max disables the check.
func WithTokenLimit(counter tailor.TokenCounter, max int) Option {
	return func(a *Analyzer) {
		a.tokens = counter
		a.maxTokens = max
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(client *genai.Client, parser tailor.AnalysisParser, opts ...Option) *Analyzer {
	a := &Analyzer{client: client, parser: parser, model: DefaultModel}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze implements tailor.Analyzer.
func (a *Analyzer) Analyze(ctx context.Context, req *tailor.AnalysisRequest) (*tailor.Analysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt := tailor.FormatAnalysisPrompt(req)
	if a.tokens != nil && a.maxTokens > 0 {
		n, err := a.tokens.CountTokens(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("count prompt tokens: %w", err)
		}
		if n > a.maxTokens {
			return nil, tailor.Errorf(tailor.EINVALID, "prompt is %d tokens, limit is %d", n, a.maxTokens)
		}
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, tailor.Errorf(tailor.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return nil, tailor.Errorf(tailor.EINTERNAL, "gemini returned nil result")
	}

	return a.parser.ParseAnalysis([]byte(result.Text()))
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: tailor.AnalysisInstruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
