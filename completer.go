package cdpsupport

import "context"

// ModelTier selects the class of model used for a completion.
type ModelTier string

// Model tiers. Small models classify; large models rank and answer.
const (
	TierSmall ModelTier = "small"
	TierLarge ModelTier = "large"
)

// CompletionRequest is a single-prompt text completion request.
type CompletionRequest struct {
	Tier        ModelTier
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completer sends prompts to a hosted language model.
type Completer interface {
	// Complete returns the trimmed model output for the prompt.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
