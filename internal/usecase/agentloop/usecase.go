// Package agentloop drives the observe-plan-act cycle.
package agentloop

import (
	"context"
	"errors"
	"fmt"

	"websitebot/internal/application/port/input"
	"websitebot/internal/application/port/output"
	"websitebot/internal/domain/entity"
	"websitebot/internal/infrastructure/prompts"
	"websitebot/internal/usecase/executor"
	"websitebot/internal/usecase/observe"
	"websitebot/internal/usecase/planner"
	"websitebot/internal/usecase/settle"

	"github.com/google/uuid"
)

var _ input.AgentRunner = (*UseCase)(nil)

type Config struct {
	Goal string
	URL  string

	YMax float64
	// HistoryLimit is how many recent summaries go into the prompt. The
	// history itself keeps everything. 0 sends all of it.
	HistoryLimit int
	// MaxRounds stops the loop after that many rounds. 0 runs until ctx ends
	// or a fatal error occurs.
	MaxRounds int

	// The viewport is sized to these fractions of the available screen.
	// Zero keeps the browser default.
	ViewportWidthRatio  float64
	ViewportHeightRatio float64

	Screenshots bool
}

func DefaultConfig(goal, url string) Config {
	return Config{
		Goal:                goal,
		URL:                 url,
		YMax:                observe.DefaultYMax,
		HistoryLimit:        30,
		ViewportWidthRatio:  0.65,
		ViewportHeightRatio: 0.95,
	}
}

type Deps struct {
	Browser   output.BrowserPort
	Extractor *observe.Extractor
	Planner   *planner.Planner
	Executor  *executor.UseCase
	Settle    settle.Policy
	Reporter  output.ReporterPort
	Recorder  output.RecorderPort
	Logger    output.LoggerPort
}

// UseCase owns the browser session for the lifetime of a run.
type UseCase struct {
	Deps
	cfg     Config
	history *entity.History
	runID   string
}

func New(deps Deps, cfg Config) *UseCase {
	runID := uuid.NewString()
	deps.Logger = deps.Logger.WithField("run_id", runID)
	return &UseCase{
		Deps:    deps,
		cfg:     cfg,
		history: entity.NewHistory(entity.SeedForURL(cfg.URL)),
		runID:   runID,
	}
}

// History returns the plan summaries recorded so far.
func (uc *UseCase) History() []string {
	return uc.history.Entries()
}

func (uc *UseCase) RunID() string {
	return uc.runID
}

// Run opens the target page and cycles observe, plan and act. It returns
// ctx.Err() when ctx ends and otherwise only on a fatal error: a failed
// navigation, entity.ErrStaleDocument, entity.ErrPlannerFailed or
// entity.ErrMalformedPlan. Failures of single steps never end the run.
func (uc *UseCase) Run(ctx context.Context) error {
	uc.Reporter.ShowStart(ctx, uc.cfg.Goal, uc.cfg.URL)
	uc.Logger.Info("Agent started", "goal", uc.cfg.Goal, "url", uc.cfg.URL)

	if err := uc.Browser.Navigate(ctx, uc.cfg.URL); err != nil {
		return fmt.Errorf("navigate to %s: %w", uc.cfg.URL, err)
	}
	uc.fitViewport(ctx)
	if err := uc.Settle.Settle(ctx, settle.AfterNavigate); err != nil {
		return err
	}

	for round := 1; uc.cfg.MaxRounds <= 0 || round <= uc.cfg.MaxRounds; round++ {
		if err := uc.Round(ctx, round); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				uc.Logger.Info("Agent stopped", "round", round, "reason", err)
				return err
			}
			uc.Logger.Error("Agent stopped", "round", round, "fatal", entity.IsFatal(err), "error", err)
			return err
		}
	}

	uc.Logger.Info("Round limit reached", "rounds", uc.cfg.MaxRounds)
	return nil
}

// Round runs one observe-plan-act cycle.
func (uc *UseCase) Round(ctx context.Context, round int) error {
	log := uc.Logger.WithField("round", round)
	uc.Reporter.ShowRound(ctx, round)

	if err := uc.Settle.Settle(ctx, settle.BeforeRound); err != nil {
		return err
	}

	records, err := uc.Extractor.Extract(ctx)
	if err != nil {
		return err
	}
	elements := observe.Filter(records, uc.cfg.YMax)
	log.Info("Page observed", "url", uc.Browser.CurrentURL(), "extracted", len(records), "kept", len(elements))

	prompt, err := prompts.Compose(uc.cfg.Goal, uc.history.Recent(uc.cfg.HistoryLimit), elements)
	if err != nil {
		return err
	}
	uc.saveArtifacts(ctx, log, round, prompt)
	uc.Reporter.ShowPrompt(ctx, prompt)

	plan, err := uc.Planner.Plan(ctx, prompt)
	if err != nil {
		return err
	}
	uc.history.Append(plan.Summary)
	uc.Reporter.ShowPlan(ctx, plan)

	failed := 0
	for _, res := range uc.Executor.Execute(ctx, plan.Steps) {
		if res.Err != nil {
			failed++
		}
		uc.Reporter.ShowStepResult(ctx, res.Action, res.Err)
	}
	log.Info("Round finished", "steps", len(plan.Steps), "failed", failed, "history", uc.history.Len())

	return uc.Settle.Settle(ctx, settle.AfterRound)
}

func (uc *UseCase) fitViewport(ctx context.Context) {
	if uc.cfg.ViewportWidthRatio <= 0 || uc.cfg.ViewportHeightRatio <= 0 {
		return
	}
	screen, err := uc.Browser.ScreenSize(ctx)
	if err != nil {
		uc.Logger.Warn("Screen size unavailable, keeping viewport", "error", err)
		return
	}
	width := int(float64(screen.Width) * uc.cfg.ViewportWidthRatio)
	height := int(float64(screen.Height) * uc.cfg.ViewportHeightRatio)
	if err := uc.Browser.SetViewport(ctx, width, height); err != nil {
		uc.Logger.Warn("Viewport resize failed", "width", width, "height", height, "error", err)
	}
}

func (uc *UseCase) saveArtifacts(ctx context.Context, log output.LoggerPort, round int, prompt string) {
	if err := uc.Recorder.SavePrompt(ctx, round, prompt); err != nil {
		log.Warn("Prompt not saved", "error", err)
	}
	if !uc.cfg.Screenshots {
		return
	}
	shot, err := uc.Browser.Screenshot(ctx)
	if err != nil {
		log.Warn("Screenshot failed", "error", err)
		return
	}
	if err := uc.Recorder.SaveScreenshot(ctx, round, shot); err != nil {
		log.Warn("Screenshot not saved", "error", err)
	}
}
