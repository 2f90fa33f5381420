package output

import "context"

// PlannerPort is a text-in, text-out completion service.
type PlannerPort interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	Prompt   string
	Sampling Sampling
}

// Sampling parameters are policy values passed through to the model.
type Sampling struct {
	Temperature      float32
	MaxTokens        int
	TopP             float32
	FrequencyPenalty float32
	PresencePenalty  float32
}

func DefaultSampling() Sampling {
	return Sampling{
		Temperature:      1.0,
		MaxTokens:        500,
		TopP:             1.0,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
	}
}
