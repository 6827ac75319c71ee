package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdpsupport"
)

// Ensure LoggingAnswerer implements cdpsupport.Answerer.
var _ cdpsupport.Answerer = (*LoggingAnswerer)(nil)

// LoggingAnswerer wraps an Answerer with logging.
type LoggingAnswerer struct {
	next   cdpsupport.Answerer
	logger *slog.Logger
}

// NewLoggingAnswerer creates a new LoggingAnswerer.
func NewLoggingAnswerer(next cdpsupport.Answerer, logger *slog.Logger) *LoggingAnswerer {
	return &LoggingAnswerer{next: next, logger: logger}
}

// Answer delegates to the wrapped answerer and logs the outcome.
func (a *LoggingAnswerer) Answer(ctx context.Context, question string) (answer *cdpsupport.Answer) {
	defer func(begin time.Time) {
		a.logger.Info("answer",
			"question", question,
			"source", answer.Source,
			"cdp", answer.Platform,
			"urls", len(answer.URLs),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return a.next.Answer(ctx, question)
}
