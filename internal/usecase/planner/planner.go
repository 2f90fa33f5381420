// Package planner asks the language model for the next steps and turns its
// answer into a typed plan.
package planner

import (
	"context"
	"fmt"
	"time"

	"websitebot/internal/application/port/output"
	"websitebot/internal/domain/entity"
)

type Config struct {
	Sampling output.Sampling
	// Timeout bounds one planner call. Zero waits as long as the service
	// takes.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Sampling: output.DefaultSampling(),
	}
}

type Planner struct {
	llm    output.PlannerPort
	logger output.LoggerPort
	cfg    Config
}

func New(llm output.PlannerPort, logger output.LoggerPort, cfg Config) *Planner {
	return &Planner{
		llm:    llm,
		logger: logger,
		cfg:    cfg,
	}
}

// Plan sends prompt to the planner and parses the answer. Both a failed call
// (entity.ErrPlannerFailed) and an unusable answer (entity.ErrMalformedPlan)
// are returned as errors for the caller to treat as fatal.
func (p *Planner) Plan(ctx context.Context, prompt string) (*entity.Plan, error) {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := p.llm.Complete(ctx, output.CompletionRequest{
		Prompt:   prompt,
		Sampling: p.cfg.Sampling,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrPlannerFailed, err)
	}

	p.logger.Debug("Planner answered",
		"duration_ms", time.Since(start).Milliseconds(),
		"response_len", len(resp))

	plan, err := Parse(resp)
	if err != nil {
		p.logger.Error("Planner answer is not a plan", "error", err, "response", resp)
		return nil, err
	}

	p.logger.Info("Plan received", "plan", plan.Summary, "steps", len(plan.Steps))
	return plan, nil
}
