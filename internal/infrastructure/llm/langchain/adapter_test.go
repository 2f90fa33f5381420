package langchain

import (
	"context"
	"errors"
	"testing"

	"websitebot/internal/application/port/output"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	answer   string
	err      error
	messages []llms.MessageContent
	opts     llms.CallOptions
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	for _, o := range options {
		o(&m.opts)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.answer}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestAdapter_Complete(t *testing.T) {
	model := &fakeModel{answer: `{"plan":"p","steps":[]}`}
	sampling := output.DefaultSampling()
	sampling.PresencePenalty = 0.5

	text, err := New(model).Complete(context.Background(), output.CompletionRequest{
		Prompt:   "OVERALL GOAL:\nbuy a ticket",
		Sampling: sampling,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"plan":"p","steps":[]}`, text)

	require.Len(t, model.messages, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[0].Role)
	require.Len(t, model.messages[0].Parts, 1)
	assert.Equal(t, llms.TextContent{Text: "OVERALL GOAL:\nbuy a ticket"}, model.messages[0].Parts[0])

	assert.Equal(t, 1.0, model.opts.Temperature)
	assert.Equal(t, 500, model.opts.MaxTokens)
	assert.Equal(t, 1.0, model.opts.TopP)
	assert.Equal(t, 0.5, model.opts.PresencePenalty)
}

func TestAdapter_CompleteError(t *testing.T) {
	boom := errors.New("rate limited")

	_, err := New(&fakeModel{err: boom}).Complete(context.Background(), output.CompletionRequest{Prompt: "x"})

	assert.ErrorIs(t, err, boom)
}
