package mock

import (
	"context"

	"github.com/fwojciec/cdpsupport"
)

var (
	_ cdpsupport.DocumentStore   = (*DocumentStore)(nil)
	_ cdpsupport.DocumentLibrary = (*DocumentLibrary)(nil)
	_ cdpsupport.Crawler         = (*Crawler)(nil)
)

// DocumentStore is a mock implementation of cdpsupport.DocumentStore.
type DocumentStore struct {
	LoadDocumentsFn func(ctx context.Context, platform cdpsupport.PlatformID) ([]*cdpsupport.Document, error)
	SaveDocumentsFn func(ctx context.Context, platform cdpsupport.PlatformID, docs []*cdpsupport.Document) error
}

func (s *DocumentStore) LoadDocuments(ctx context.Context, platform cdpsupport.PlatformID) ([]*cdpsupport.Document, error) {
	return s.LoadDocumentsFn(ctx, platform)
}

func (s *DocumentStore) SaveDocuments(ctx context.Context, platform cdpsupport.PlatformID, docs []*cdpsupport.Document) error {
	return s.SaveDocumentsFn(ctx, platform, docs)
}

// DocumentLibrary is a mock implementation of cdpsupport.DocumentLibrary.
type DocumentLibrary struct {
	DocumentsFn func(platform cdpsupport.PlatformID) []*cdpsupport.Document
	ReadyFn     func() bool
	ErrFn       func() error
}

func (l *DocumentLibrary) Documents(platform cdpsupport.PlatformID) []*cdpsupport.Document {
	return l.DocumentsFn(platform)
}

func (l *DocumentLibrary) Ready() bool {
	return l.ReadyFn()
}

func (l *DocumentLibrary) Err() error {
	return l.ErrFn()
}

// Crawler is a mock implementation of cdpsupport.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, platform *cdpsupport.Platform) ([]*cdpsupport.Document, error)
}

func (c *Crawler) Crawl(ctx context.Context, platform *cdpsupport.Platform) ([]*cdpsupport.Document, error) {
	return c.CrawlFn(ctx, platform)
}
