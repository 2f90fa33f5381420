package entity

import (
	"encoding/json"
	"fmt"
)

type ActionKind string

const (
	ActionClick ActionKind = "click"
	ActionFill  ActionKind = "fill"
)

// Action is one planned UI step. Kind selects the variant: click uses
// Target only, fill uses Target and Value.
//
// Steps the planner produced in a shape that could not be decoded keep their
// raw JSON in Raw and the reason in DecodeErr.
type Action struct {
	Kind   ActionKind
	Target Descriptor
	Value  string

	Raw       json.RawMessage
	DecodeErr error
}

func Click(target Descriptor) Action {
	return Action{Kind: ActionClick, Target: target}
}

func Fill(target Descriptor, value string) Action {
	return Action{Kind: ActionFill, Target: target, Value: value}
}

// Valid reports whether the action can be executed as far as its shape goes.
func (a Action) Valid() error {
	if a.DecodeErr != nil {
		return a.DecodeErr
	}
	switch a.Kind {
	case ActionClick, ActionFill:
		return nil
	default:
		return fmt.Errorf("unknown action %q", a.Kind)
	}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionFill:
		return fmt.Sprintf("fill %q into %s", a.Value, a.Target)
	case ActionClick:
		return fmt.Sprintf("click %s", a.Target)
	default:
		return fmt.Sprintf("invalid step %s", string(a.Raw))
	}
}

func (d Descriptor) String() string {
	switch {
	case d.ID != "":
		return fmt.Sprintf("<%s id=%q>", d.Name, d.ID)
	case d.Text != "":
		return fmt.Sprintf("<%s text=%q>", d.Name, d.Text)
	default:
		return fmt.Sprintf("<%s>", d.Name)
	}
}

type stepJSON struct {
	Action string          `json:"action"`
	Value  *string         `json:"value"`
	Tag    json.RawMessage `json:"tag"`
}

// DecodeAction turns one planner step into an Action. It never fails: a step
// that does not fit the click/fill shapes is returned with DecodeErr set.
func DecodeAction(raw json.RawMessage) Action {
	a := Action{Raw: raw}

	var s stepJSON
	if err := json.Unmarshal(raw, &s); err != nil {
		a.DecodeErr = fmt.Errorf("decode step: %w", err)
		return a
	}
	a.Kind = ActionKind(s.Action)

	if len(s.Tag) == 0 || string(s.Tag) == "null" {
		a.DecodeErr = fmt.Errorf("step %q has no tag", s.Action)
		return a
	}
	if err := json.Unmarshal(s.Tag, &a.Target); err != nil {
		a.DecodeErr = fmt.Errorf("decode tag: %w", err)
		return a
	}

	switch a.Kind {
	case ActionClick:
	case ActionFill:
		if s.Value == nil {
			a.DecodeErr = fmt.Errorf("fill step has no value")
			return a
		}
		a.Value = *s.Value
	default:
		a.DecodeErr = fmt.Errorf("unknown action %q", s.Action)
	}
	return a
}

// Plan is the parsed planner output for one round.
type Plan struct {
	Summary string
	Steps   []Action
}
