package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"websitebot/internal/domain/entity"
)

type planJSON struct {
	Plan  *string            `json:"plan"`
	Steps *[]json.RawMessage `json:"steps"`
}

// Parse extracts the plan object from a planner response. The object spans
// from the first '{' to the last '}', so commentary around it is ignored.
// Steps are decoded one by one and never fail the parse; see
// entity.DecodeAction.
func Parse(response string) (*entity.Plan, error) {
	start := strings.Index(response, "{")
	if start == -1 {
		return nil, fmt.Errorf("%w: no JSON object in response", entity.ErrMalformedPlan)
	}
	end := strings.LastIndex(response, "}")
	if end < start {
		return nil, fmt.Errorf("%w: unbalanced braces in response", entity.ErrMalformedPlan)
	}

	var doc planJSON
	if err := json.Unmarshal([]byte(response[start:end+1]), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrMalformedPlan, err)
	}
	if doc.Plan == nil {
		return nil, fmt.Errorf("%w: missing \"plan\"", entity.ErrMalformedPlan)
	}
	if doc.Steps == nil {
		return nil, fmt.Errorf("%w: missing \"steps\"", entity.ErrMalformedPlan)
	}

	plan := &entity.Plan{
		Summary: *doc.Plan,
		Steps:   make([]entity.Action, 0, len(*doc.Steps)),
	}
	for _, raw := range *doc.Steps {
		plan.Steps = append(plan.Steps, entity.DecodeAction(raw))
	}
	return plan, nil
}
