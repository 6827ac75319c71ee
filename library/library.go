// Package library holds the loaded documentation of every platform.
//
// A platform's documents are read from the store when cached, otherwise
// crawled and saved once. After the first successful load a platform is
// served from memory for the life of the process.
package library

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/cdpsupport"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Compile-time interface verification.
var _ cdpsupport.DocumentLibrary = (*Library)(nil)

// Library is the write-once read-many documentation cache.
type Library struct {
	store   cdpsupport.DocumentStore
	crawler cdpsupport.Crawler
	catalog cdpsupport.Catalog
	logger  *slog.Logger

	group singleflight.Group

	mu    sync.RWMutex
	docs  map[cdpsupport.PlatformID][]*cdpsupport.Document
	ready bool
	err   error
}

// New creates a Library over the given store and crawler.
// A nil logger discards log output.
func New(store cdpsupport.DocumentStore, crawler cdpsupport.Crawler, catalog cdpsupport.Catalog, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Library{
		store:   store,
		crawler: crawler,
		catalog: catalog,
		logger:  logger,
		docs:    make(map[cdpsupport.PlatformID][]*cdpsupport.Document),
	}
}

// Documents returns the loaded documents for a platform, or nil when the
// platform has not been loaded.
func (l *Library) Documents(platform cdpsupport.PlatformID) []*cdpsupport.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.docs[platform]
}

// Ready reports whether LoadAll has completed.
func (l *Library) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ready
}

// Err returns the most recent load, crawl or save error.
func (l *Library) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Load returns a platform's documents, reading them from the store or
// crawling and saving them on a cache miss. Concurrent calls for the same
// platform share a single load.
//
// Crawl and save failures are logged and recorded in Err; the platform keeps
// whatever the crawler returned. An error is returned only for an unknown
// platform or a canceled context, and in that case nothing is kept.
func (l *Library) Load(ctx context.Context, id cdpsupport.PlatformID) ([]*cdpsupport.Document, error) {
	if docs, ok := l.loaded(id); ok {
		return docs, nil
	}

	v, err, _ := l.group.Do(string(id), func() (any, error) {
		if docs, ok := l.loaded(id); ok {
			return docs, nil
		}
		return l.load(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*cdpsupport.Document), nil
}

// LoadAll loads every platform in the catalog concurrently and marks the
// library ready.
func (l *Library) LoadAll(ctx context.Context) error {
	begin := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range l.catalog {
		g.Go(func() error {
			_, err := l.Load(gctx, p.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		l.setErr(err)
		return err
	}

	l.mu.Lock()
	l.ready = true
	l.mu.Unlock()

	total := 0
	for _, p := range l.catalog {
		total += len(l.Documents(p.ID))
	}
	l.logger.Info("documentation ready", "platforms", len(l.catalog), "documents", total, "duration", time.Since(begin))
	return nil
}

func (l *Library) load(ctx context.Context, id cdpsupport.PlatformID) ([]*cdpsupport.Document, error) {
	platform := l.catalog.Find(id)
	if platform == nil {
		return nil, cdpsupport.Errorf(cdpsupport.ENOTFOUND, "unknown platform %q", id)
	}
	logger := l.logger.With("platform", id)

	docs, err := l.store.LoadDocuments(ctx, id)
	switch {
	case err == nil:
		logger.Info("loaded documentation from cache", "documents", len(docs))
		l.keep(id, docs)
		return docs, nil
	case cdpsupport.ErrorCode(err) == cdpsupport.ENOTFOUND:
		logger.Info("documentation not cached, crawling", "seed", platform.SeedURL)
	default:
		logger.Warn("cache unreadable, crawling", "err", err)
	}

	docs, err = l.crawler.Crawl(ctx, platform)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if docs == nil {
		docs = []*cdpsupport.Document{}
	}
	if err != nil {
		logger.Error("crawl failed", "err", err)
		l.setErr(err)
		l.keep(id, docs)
		return docs, nil
	}

	if err := l.store.SaveDocuments(ctx, id, docs); err != nil {
		logger.Error("failed to save documentation", "err", err)
		l.setErr(err)
	}
	l.keep(id, docs)
	return docs, nil
}

func (l *Library) loaded(id cdpsupport.PlatformID) ([]*cdpsupport.Document, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	docs, ok := l.docs[id]
	return docs, ok
}

func (l *Library) keep(id cdpsupport.PlatformID, docs []*cdpsupport.Document) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs[id] = docs
}

func (l *Library) setErr(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}
