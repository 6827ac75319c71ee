package cdpsupport

import "context"

// Source tags how an answer was produced.
type Source string

// Answer sources reported to callers.
const (
	SourceOffTopic Source = "off-topic"
	SourceNoDocs   Source = "no-docs"
	SourceDirect   Source = "direct-llm"
	SourceDocBased Source = "doc-based"
	SourceError    Source = "error"
)

// Answer is the response to a user question.
type Answer struct {
	Text     string     `json:"text"`
	Source   Source     `json:"source"`
	Platform PlatformID `json:"cdp,omitempty"`
	URLs     []string   `json:"urls,omitempty"`
}

// Answerer answers natural language questions about the supported platforms.
type Answerer interface {
	// Answer never fails: errors are reported as an Answer with SourceError.
	Answer(ctx context.Context, question string) *Answer
}
