package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"websitebot/internal/application/port/output"
	"websitebot/internal/application/port/output/outputtest"
	"websitebot/internal/domain/entity"
	"websitebot/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanner_SendsPromptWithSampling(t *testing.T) {
	llm := outputtest.NewPlanner(acceptPlan)
	p := New(llm, logger.NewNop(), DefaultConfig())

	plan, err := p.Plan(context.Background(), "the prompt")
	require.NoError(t, err)

	assert.Equal(t, "accept cookies", plan.Summary)
	require.Len(t, llm.Requests, 1)
	assert.Equal(t, "the prompt", llm.Requests[0].Prompt)
	assert.Equal(t, output.DefaultSampling(), llm.Requests[0].Sampling)
}

func TestPlanner_CallFailureIsFatal(t *testing.T) {
	llm := outputtest.NewPlanner()
	llm.Err = errors.New("401 unauthorized")
	p := New(llm, logger.NewNop(), DefaultConfig())

	_, err := p.Plan(context.Background(), "prompt")

	assert.ErrorIs(t, err, entity.ErrPlannerFailed)
	assert.True(t, entity.IsFatal(err))
}

func TestPlanner_GarbageIsMalformedPlan(t *testing.T) {
	p := New(outputtest.NewPlanner("I am not sure what to do."), logger.NewNop(), DefaultConfig())

	_, err := p.Plan(context.Background(), "prompt")

	assert.ErrorIs(t, err, entity.ErrMalformedPlan)
}

type slowPlanner struct{}

func (slowPlanner) Complete(ctx context.Context, req output.CompletionRequest) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestPlanner_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 10 * time.Millisecond
	p := New(slowPlanner{}, logger.NewNop(), cfg)

	_, err := p.Plan(context.Background(), "prompt")

	assert.ErrorIs(t, err, entity.ErrPlannerFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
