package userinteraction

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"websitebot/internal/application/port/output"
	"websitebot/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.ReporterPort = (*ConsoleReporter)(nil)

// ConsoleReporter prints the agent's progress for a human watching the run.
type ConsoleReporter struct {
	out         io.Writer
	showPrompts bool
}

func NewConsoleReporter(showPrompts bool) *ConsoleReporter {
	return NewConsoleReporterTo(os.Stdout, showPrompts)
}

func NewConsoleReporterTo(out io.Writer, showPrompts bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, showPrompts: showPrompts}
}

func (r *ConsoleReporter) ShowStart(ctx context.Context, goal, url string) {
	bold := color.New(color.Bold)
	bold.Fprintf(r.out, "Goal: %s\n", goal)
	color.New(color.Faint).Fprintf(r.out, "Start: %s\n", url)
}

func (r *ConsoleReporter) ShowRound(ctx context.Context, round int) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(r.out, "\n━━━ Round %d ━━━\n", round)
}

func (r *ConsoleReporter) ShowPrompt(ctx context.Context, prompt string) {
	if !r.showPrompts {
		return
	}
	color.New(color.FgGreen).Fprintln(r.out, prompt)
}

func (r *ConsoleReporter) ShowPlan(ctx context.Context, plan *entity.Plan) {
	blue := color.New(color.FgBlue)
	blue.Fprintf(r.out, "\nPlan: %s\n", plan.Summary)

	dim := color.New(color.Faint)
	for i, step := range plan.Steps {
		dim.Fprintf(r.out, "   %d. %s\n", i+1, truncate(step.String(), 120))
	}
}

func (r *ConsoleReporter) ShowStepResult(ctx context.Context, step entity.Action, err error) {
	if err != nil {
		color.New(color.FgRed).Fprint(r.out, "✗ ")
		color.New(color.Faint).Fprintf(r.out, "%s: %s\n", truncate(step.String(), 80), truncate(err.Error(), 300))
		return
	}
	color.New(color.FgGreen).Fprintf(r.out, "✓ %s\n", truncate(step.String(), 100))
}

func truncate(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// FormatOutcome is the closing line for a finished or stopped run.
func FormatOutcome(err error) string {
	if err == nil {
		return "Run finished"
	}
	return fmt.Sprintf("Run stopped: %v", err)
}
