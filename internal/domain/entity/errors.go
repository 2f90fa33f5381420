package entity

import "errors"

// Fatal: the loop stops when one of these reaches it.
var (
	ErrStaleDocument = errors.New("stale document")
	ErrMalformedPlan = errors.New("malformed plan")
	ErrPlannerFailed = errors.New("planner failed")
)

// Per step: recorded, logged and skipped.
var (
	ErrElementNotDescribed = errors.New("element not described")
	ErrElementNotFound     = errors.New("element not found")
	ErrActionFailed        = errors.New("action failed")
)

// IsFatal reports whether err must stop the agent.
func IsFatal(err error) bool {
	return errors.Is(err, ErrStaleDocument) ||
		errors.Is(err, ErrMalformedPlan) ||
		errors.Is(err, ErrPlannerFailed)
}
