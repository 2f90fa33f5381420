package input

import "context"

// AgentRunner runs the observe-plan-act loop until ctx is done or a fatal
// error occurs.
type AgentRunner interface {
	Run(ctx context.Context) error
}
