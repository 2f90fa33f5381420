// Package settle decides how long to wait for the page to catch up with
// asynchronous rendering between agent actions.
package settle

import (
	"context"
	"time"
)

// Point names the moment in the loop at which a wait happens.
type Point string

const (
	AfterNavigate Point = "after_navigate"
	BeforeRound   Point = "before_round"
	AfterRound    Point = "after_round"
	BeforeStep    Point = "before_step"
	AfterStep     Point = "after_step"
)

// Policy blocks until the page is considered settled. It returns an error
// only when ctx ends.
type Policy interface {
	Settle(ctx context.Context, at Point) error
}

// Fixed waits the same duration at every point.
type Fixed struct {
	Duration time.Duration
}

func (f Fixed) Settle(ctx context.Context, at Point) error {
	return sleep(ctx, f.Duration)
}

// None does not wait.
func None() Policy {
	return Fixed{}
}

// Probe reports whether the page is ready for the next read.
type Probe interface {
	Ready(ctx context.Context) (bool, error)
}

// Readiness polls Probe every Interval until it reports ready or Timeout
// passes. Probe errors count as not ready. Reaching Timeout is not an error:
// the loop goes on with whatever the page shows.
type Readiness struct {
	Probe    Probe
	Interval time.Duration
	Timeout  time.Duration
	// Grace is waited before the first poll so that a click has time to
	// start a navigation.
	Grace time.Duration
}

func (r Readiness) Settle(ctx context.Context, at Point) error {
	if err := sleep(ctx, r.Grace); err != nil {
		return err
	}

	deadline := time.Now().Add(r.Timeout)
	for {
		if ok, err := r.Probe.Ready(ctx); err == nil && ok {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !time.Now().Before(deadline) {
			return nil
		}
		if err := sleep(ctx, r.Interval); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil || d <= 0 {
		return err
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
