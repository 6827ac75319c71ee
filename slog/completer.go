package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdpsupport"
)

// Ensure LoggingCompleter implements cdpsupport.Completer.
var _ cdpsupport.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. Prompts and outputs are
// logged by size only.
type LoggingCompleter struct {
	next   cdpsupport.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next cdpsupport.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the operation.
func (c *LoggingCompleter) Complete(ctx context.Context, req cdpsupport.CompletionRequest) (text string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		c.logger.Log(ctx, level, "completion",
			"tier", req.Tier,
			"max_tokens", req.MaxTokens,
			"prompt_chars", len(req.Prompt),
			"output_chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, req)
}
