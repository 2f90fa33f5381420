// Package langchain plans through a langchaingo model.
package langchain

import (
	"context"
	"fmt"

	"websitebot/internal/application/port/output"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var _ output.PlannerPort = (*Adapter)(nil)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Adapter struct {
	llm llms.Model
}

// NewOpenAI backs the adapter with langchaingo's OpenAI client.
func NewOpenAI(cfg Config) (*Adapter, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create langchain openai client: %w", err)
	}
	return New(llm), nil
}

func New(llm llms.Model) *Adapter {
	return &Adapter{llm: llm}
}

func (a *Adapter) Complete(ctx context.Context, req output.CompletionRequest) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, a.llm, req.Prompt, callOptions(req.Sampling)...)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return text, nil
}

func callOptions(s output.Sampling) []llms.CallOption {
	return []llms.CallOption{
		llms.WithTemperature(float64(s.Temperature)),
		llms.WithMaxTokens(s.MaxTokens),
		llms.WithTopP(float64(s.TopP)),
		llms.WithFrequencyPenalty(float64(s.FrequencyPenalty)),
		llms.WithPresencePenalty(float64(s.PresencePenalty)),
	}
}
