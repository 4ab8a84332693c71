package tailor

import "context"

// TokenCounter counts model tokens in text. Analyzers use it to keep
// prompts within a model's input budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
