package executor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"websitebot/internal/application/port/output"
	"websitebot/internal/domain/entity"
	"websitebot/internal/usecase/settle"

	"github.com/cenkalti/backoff/v4"
)

type Config struct {
	// Attempts is how often a step whose element is not on the page yet is
	// tried. 1 disables retrying.
	Attempts int
	// Backoff is the first wait between attempts; it grows exponentially.
	Backoff time.Duration
}

func DefaultConfig() Config {
	return Config{
		Attempts: 3,
		Backoff:  500 * time.Millisecond,
	}
}

// StepResult is the outcome of one planned step. Err is nil on success.
type StepResult struct {
	Index    int
	Action   entity.Action
	Attempts int
	Err      error
}

type UseCase struct {
	browser output.BrowserPort
	settle  settle.Policy
	logger  output.LoggerPort
	cfg     Config
}

func New(browser output.BrowserPort, policy settle.Policy, logger output.LoggerPort, cfg Config) *UseCase {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &UseCase{
		browser: browser,
		settle:  policy,
		logger:  logger,
		cfg:     cfg,
	}
}

// Execute runs steps in order against the live page. A failing step is
// logged, recorded in its StepResult and skipped; it never stops the batch.
// After every step the page body is clicked at its origin to drop focus,
// tooltips and open menus left by the step. Only ctx ending cuts the batch
// short.
func (uc *UseCase) Execute(ctx context.Context, steps []entity.Action) []StepResult {
	uc.logger.Info("Executing steps", "count", len(steps))

	results := make([]StepResult, 0, len(steps))
	for i, step := range steps {
		if err := uc.settle.Settle(ctx, settle.BeforeStep); err != nil {
			break
		}

		res := uc.executeStep(ctx, i, step)
		results = append(results, res)

		if err := uc.browser.ClickOrigin(ctx); err != nil {
			uc.logger.Warn("Defocus click failed", "step", i+1, "error", err)
		}

		if err := uc.settle.Settle(ctx, settle.AfterStep); err != nil {
			break
		}
	}
	return results
}

func (uc *UseCase) executeStep(ctx context.Context, i int, step entity.Action) StepResult {
	res := StepResult{Index: i, Action: step}
	log := uc.logger.WithFields(map[string]any{
		"step":   i + 1,
		"action": string(step.Kind),
	})

	res.Err = func() error {
		if err := step.Valid(); err != nil {
			return fmt.Errorf("%w: %w", entity.ErrActionFailed, err)
		}

		loc, err := LocatorFor(step.Target)
		if err != nil {
			return err
		}

		el, attempts, err := uc.resolve(ctx, loc)
		res.Attempts = attempts
		if err != nil {
			return err
		}

		return perform(ctx, el, step)
	}()

	if res.Err != nil {
		log.Warn("Step failed", "target", step.Target.String(), "error", res.Err)
	} else {
		log.Info("Step done", "target", step.Target.String())
	}
	return res
}

// tagName admits plain element names only; the tag ends up in a query.
var tagName = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// LocatorFor picks how to find the described element: by id when known,
// otherwise by its whitespace-normalized text.
func LocatorFor(d entity.Descriptor) (output.Locator, error) {
	tag := strings.ToLower(strings.TrimSpace(d.Name))
	if tag == "" {
		return output.Locator{}, fmt.Errorf("%w: no tag name", entity.ErrElementNotDescribed)
	}
	if !tagName.MatchString(tag) {
		return output.Locator{}, fmt.Errorf("%w: %q is not an element name", entity.ErrElementNotDescribed, d.Name)
	}
	if d.ID != "" {
		return output.Locator{Tag: tag, ID: d.ID}, nil
	}
	if text := NormalizeSpace(d.Text); text != "" {
		return output.Locator{Tag: tag, Text: text}, nil
	}
	return output.Locator{}, fmt.Errorf("%w: %s has neither id nor text", entity.ErrElementNotDescribed, tag)
}

// NormalizeSpace trims s and collapses inner whitespace runs to one space,
// like XPath normalize-space().
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (uc *UseCase) resolve(ctx context.Context, loc output.Locator) (output.ElementHandle, int, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = uc.cfg.Backoff
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(uc.cfg.Attempts-1)), ctx)

	var (
		found    output.ElementHandle
		attempts int
	)
	op := func() error {
		attempts++
		els, err := uc.browser.Locate(ctx, loc)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: locate %s: %w", entity.ErrActionFailed, describe(loc), err))
		}
		if len(els) == 0 {
			return fmt.Errorf("%w: %s", entity.ErrElementNotFound, describe(loc))
		}
		found = els[0]
		return nil
	}

	err := backoff.Retry(op, policy)
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	return found, attempts, err
}

func perform(ctx context.Context, el output.ElementHandle, step entity.Action) error {
	var err error
	switch step.Kind {
	case entity.ActionClick:
		err = el.Click(ctx)
	case entity.ActionFill:
		err = el.Fill(ctx, step.Value)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", entity.ErrActionFailed, step.Kind, err)
	}
	return nil
}

func describe(loc output.Locator) string {
	if loc.ByID() {
		return fmt.Sprintf("<%s id=%q>", loc.Tag, loc.ID)
	}
	return fmt.Sprintf("<%s text=%q>", loc.Tag, loc.Text)
}
