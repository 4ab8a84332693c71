// Package openai implements tailor.Analyzer against any OpenAI-compatible
// chat completions endpoint.
package openai

import (
	"context"
	"strings"

	"github.com/fwojciec/tailor"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// ChatClient is the subset of *openai.Client used by Analyzer.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var _ tailor.Analyzer = (*Analyzer)(nil)

// Analyzer requests a JSON analysis through chat completions.
type Analyzer struct {
	Client ChatClient
	Parser tailor.AnalysisParser
	Model  string
}

// NewClient builds a client for apiKey. An empty baseURL targets the
// official API.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// Analyze implements tailor.Analyzer.
func (a *Analyzer) Analyze(ctx context.Context, req *tailor.AnalysisRequest) (*tailor.Analysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	model := a.Model
	if model == "" {
		model = DefaultModel
	}

	resp, err := a.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: tailor.AnalysisInstruction},
			{Role: openai.ChatMessageRoleUser, Content: tailor.FormatAnalysisPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
		N:           1,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, tailor.Errorf(tailor.EUNAVAILABLE, "openai: %v", err)
	}
	if len(resp.Choices) == 0 {
		return nil, tailor.Errorf(tailor.EINVALID, "openai returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	return a.Parser.ParseAnalysis([]byte(raw))
}
