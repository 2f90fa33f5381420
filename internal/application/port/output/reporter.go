package output

import (
	"context"

	"websitebot/internal/domain/entity"
)

// ReporterPort presents the progress of the agent to a human.
type ReporterPort interface {
	ShowStart(ctx context.Context, goal, url string)
	ShowRound(ctx context.Context, round int)
	ShowPrompt(ctx context.Context, prompt string)
	ShowPlan(ctx context.Context, plan *entity.Plan)
	ShowStepResult(ctx context.Context, step entity.Action, err error)
}
