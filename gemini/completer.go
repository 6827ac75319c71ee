// Package gemini implements cdpsupport.Completer using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/cdpsupport"
	"google.golang.org/genai"
)

// Default models per tier.
const (
	DefaultSmallModel = "gemini-2.5-flash-lite"
	DefaultLargeModel = "gemini-2.5-flash"
)

// Ensure Completer implements cdpsupport.Completer at compile time.
var _ cdpsupport.Completer = (*Completer)(nil)

// Completer implements cdpsupport.Completer using Google Gemini.
type Completer struct {
	client     *genai.Client
	smallModel string
	largeModel string
}

// NewCompleter creates a new Completer. Empty model names use the defaults.
func NewCompleter(client *genai.Client, smallModel, largeModel string) *Completer {
	if smallModel == "" {
		smallModel = DefaultSmallModel
	}
	if largeModel == "" {
		largeModel = DefaultLargeModel
	}
	return &Completer{client: client, smallModel: smallModel, largeModel: largeModel}
}

// Model returns the model name used for a tier.
func (c *Completer) Model(tier cdpsupport.ModelTier) string {
	if tier == cdpsupport.TierSmall {
		return c.smallModel
	}
	return c.largeModel
}

// Complete sends the prompt and returns the trimmed response text.
func (c *Completer) Complete(ctx context.Context, req cdpsupport.CompletionRequest) (string, error) {
	if req.Prompt == "" {
		return "", cdpsupport.Errorf(cdpsupport.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.Model(req.Tier),
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.Prompt}},
		}},
		BuildConfig(req),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", cdpsupport.Errorf(cdpsupport.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for a completion request.
// Thinking is disabled so that small token limits hold the answer itself.
func BuildConfig(req cdpsupport.CompletionRequest) *genai.GenerateContentConfig {
	temp := float32(req.Temperature)
	budget := int32(0)
	config := &genai.GenerateContentConfig{
		Temperature:    &temp,
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: &budget},
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	return config
}
