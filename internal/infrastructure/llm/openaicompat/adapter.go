// Package openaicompat talks to any service that speaks the OpenAI chat
// completions API (OpenAI, OpenRouter, local gateways).
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"websitebot/internal/application/port/output"

	"github.com/sashabaranov/go-openai"
)

var _ output.PlannerPort = (*Adapter)(nil)

var ErrEmptyResponse = errors.New("no choices in response")

type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the OpenAI endpoint. Empty keeps the default.
	BaseURL string
	Logger  output.LoggerPort
	// LogBodies logs every request body at debug level.
	LogBodies bool
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey: apiKey,
		Model:  model,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
	bodies bool
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	fields := []any{"method", req.Method, "url", req.URL.String()}
	if t.bodies && req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var requestData map[string]any
		if json.Unmarshal(bodyBytes, &requestData) == nil {
			fields = append(fields, "body", requestData)
		}
	}
	t.logger.Debug("HTTP Request", fields...)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Warn("HTTP Request failed", "url", req.URL.String(), "error", err)
		return nil, err
	}

	t.logger.Debug("HTTP Response",
		"status", resp.Status,
		"statusCode", resp.StatusCode,
	)
	return resp, nil
}

func NewAdapter(cfg Config) *Adapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	if cfg.Logger != nil {
		config.HTTPClient = &http.Client{
			Transport: &loggingTransport{
				base:   http.DefaultTransport,
				logger: cfg.Logger,
				bodies: cfg.LogBodies,
			},
		}
	}

	return &Adapter{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Complete sends the prompt as the only user message and returns the text of
// the first choice.
func (a *Adapter) Complete(ctx context.Context, req output.CompletionRequest) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, buildRequest(a.model, req))
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return firstContent(resp)
}

func buildRequest(model string, req output.CompletionRequest) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature:      req.Sampling.Temperature,
		MaxTokens:        req.Sampling.MaxTokens,
		TopP:             req.Sampling.TopP,
		FrequencyPenalty: req.Sampling.FrequencyPenalty,
		PresencePenalty:  req.Sampling.PresencePenalty,
	}
}

func firstContent(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
