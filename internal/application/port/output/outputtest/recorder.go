package outputtest

import (
	"context"
	"sync"

	"websitebot/internal/application/port/output"
	"websitebot/internal/domain/entity"
)

var (
	_ output.RecorderPort = (*Recorder)(nil)
	_ output.ReporterPort = (*Reporter)(nil)
)

// Recorder keeps artifacts in memory. OnPrompt runs after every saved prompt.
type Recorder struct {
	mu          sync.Mutex
	Prompts     []string
	Screenshots int
	OnPrompt    func(round int)
}

func (r *Recorder) SavePrompt(ctx context.Context, round int, prompt string) error {
	r.mu.Lock()
	r.Prompts = append(r.Prompts, prompt)
	hook := r.OnPrompt
	r.mu.Unlock()

	if hook != nil {
		hook(round)
	}
	return nil
}

func (r *Recorder) SaveScreenshot(ctx context.Context, round int, shot *entity.Screenshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Screenshots++
	return nil
}

// Reporter counts what would have been shown.
type Reporter struct {
	mu          sync.Mutex
	Rounds      int
	Plans       []string
	StepErrors  []error
	PromptsSeen int
}

func (r *Reporter) ShowStart(ctx context.Context, goal, url string) {}

func (r *Reporter) ShowRound(ctx context.Context, round int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rounds++
}

func (r *Reporter) ShowPrompt(ctx context.Context, prompt string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PromptsSeen++
}

func (r *Reporter) ShowPlan(ctx context.Context, plan *entity.Plan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Plans = append(r.Plans, plan.Summary)
}

func (r *Reporter) ShowStepResult(ctx context.Context, step entity.Action, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.StepErrors = append(r.StepErrors, err)
}
