package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdpsupport"
)

// Ensure LoggingStore implements cdpsupport.DocumentStore.
var _ cdpsupport.DocumentStore = (*LoggingStore)(nil)

// LoggingStore wraps a DocumentStore with logging.
type LoggingStore struct {
	next   cdpsupport.DocumentStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next cdpsupport.DocumentStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// LoadDocuments delegates to the wrapped store and logs the operation.
// A cache miss is logged at debug level.
func (s *LoggingStore) LoadDocuments(ctx context.Context, platform cdpsupport.PlatformID) (docs []*cdpsupport.Document, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		switch cdpsupport.ErrorCode(err) {
		case "":
		case cdpsupport.ENOTFOUND:
			level = slog.LevelDebug
		default:
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "load documents",
			"platform", platform,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadDocuments(ctx, platform)
}

// SaveDocuments delegates to the wrapped store and logs the operation.
func (s *LoggingStore) SaveDocuments(ctx context.Context, platform cdpsupport.PlatformID, docs []*cdpsupport.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save documents",
			"platform", platform,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveDocuments(ctx, platform, docs)
}
