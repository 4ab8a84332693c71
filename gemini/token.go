package gemini

import (
	"context"

	"github.com/fwojciec/tailor"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ tailor.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens locally with the Gemini tokenizer, so
// oversized resumes are rejected before any API call is made.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens implements tailor.TokenCounter.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
