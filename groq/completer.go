// Package groq implements cdpsupport.Completer over Groq's
// OpenAI-compatible chat completions API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/cdpsupport"
)

// Defaults for the Groq API.
const (
	DefaultURL        = "https://api.groq.com/openai/v1/chat/completions"
	DefaultSmallModel = "llama3-8b-8192"
	DefaultLargeModel = "llama3-70b-8192"
	DefaultTimeout    = 60 * time.Second

	// maxErrorBody bounds how much of an error response is reported.
	maxErrorBody = 512
)

// Ensure Completer implements cdpsupport.Completer at compile time.
var _ cdpsupport.Completer = (*Completer)(nil)

// Completer sends single-message chat completions to Groq.
type Completer struct {
	apiKey     string
	url        string
	smallModel string
	largeModel string
	httpClient *http.Client
}

// Option configures a Completer.
type Option func(*Completer)

// WithURL overrides the chat completions endpoint.
func WithURL(url string) Option {
	return func(c *Completer) {
		c.url = url
	}
}

// WithModels sets the model used for each tier. Empty names keep the default.
func WithModels(small, large string) Option {
	return func(c *Completer) {
		if small != "" {
			c.smallModel = small
		}
		if large != "" {
			c.largeModel = large
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Completer) {
		c.httpClient = client
	}
}

// NewCompleter creates a Completer authenticated with apiKey.
func NewCompleter(apiKey string, opts ...Option) (*Completer, error) {
	if apiKey == "" {
		return nil, cdpsupport.Errorf(cdpsupport.EINVALID, "groq API key required")
	}
	c := &Completer{
		apiKey:     apiKey,
		url:        DefaultURL,
		smallModel: DefaultSmallModel,
		largeModel: DefaultLargeModel,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the model name used for a tier.
func (c *Completer) Model(tier cdpsupport.ModelTier) string {
	if tier == cdpsupport.TierSmall {
		return c.smallModel
	}
	return c.largeModel
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the
// trimmed content of the first choice.
func (c *Completer) Complete(ctx context.Context, req cdpsupport.CompletionRequest) (string, error) {
	body, err := json.Marshal(request{
		Model:       c.Model(req.Tier),
		Messages:    []message{{Role: "user", Content: req.Prompt}},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		code := cdpsupport.EUNAVAILABLE
		if resp.StatusCode == http.StatusBadRequest {
			code = cdpsupport.EINVALID
		}
		return "", cdpsupport.Errorf(code, "groq returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", cdpsupport.Errorf(cdpsupport.EINTERNAL, "groq returned no choices")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
