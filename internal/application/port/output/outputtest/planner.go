package outputtest

import (
	"context"
	"errors"
	"sync"

	"websitebot/internal/application/port/output"
)

var _ output.PlannerPort = (*Planner)(nil)

// ErrNoResponse is returned once a Planner runs out of scripted responses.
var ErrNoResponse = errors.New("no scripted response left")

// Planner answers prompts with scripted responses in order.
type Planner struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Requests  []output.CompletionRequest
}

func NewPlanner(responses ...string) *Planner {
	return &Planner{Responses: responses}
}

func (p *Planner) Complete(ctx context.Context, req output.CompletionRequest) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Requests = append(p.Requests, req)
	if p.Err != nil {
		return "", p.Err
	}
	if len(p.Responses) == 0 {
		return "", ErrNoResponse
	}
	resp := p.Responses[0]
	p.Responses = p.Responses[1:]
	return resp, nil
}
