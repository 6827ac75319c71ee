// Package crawl provides the breadth-first documentation crawler.
// It walks a platform's documentation site from its seed URL, following
// same-host links, and turns every page with enough text into a document.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/cdpsupport"
)

// Crawl limits.
const (
	// DefaultMaxPages is the default number of URLs dequeued per crawl.
	DefaultMaxPages = 50

	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.0001
)

// Compile-time interface verification.
var _ cdpsupport.Crawler = (*Crawler)(nil)

// Crawler performs a single-threaded breadth-first crawl of one site.
type Crawler struct {
	Fetcher     cdpsupport.Fetcher
	Extractor   cdpsupport.Extractor
	Links       cdpsupport.LinkExtractor
	RateLimiter cdpsupport.DomainLimiter // optional
	MaxPages    int
	Logger      *slog.Logger
	Progress    ProgressFunc
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type     ProgressType
	Platform cdpsupport.PlatformID
	URL      string
	Visited  int
	Kept     int
	Error    error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressKept ProgressType = iota
	ProgressThin
	ProgressFailed
	ProgressFinished
)

// String returns the lowercase name of the progress type.
func (t ProgressType) String() string {
	switch t {
	case ProgressKept:
		return "kept"
	case ProgressThin:
		return "thin"
	case ProgressFailed:
		return "failed"
	case ProgressFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl walks the platform's documentation site starting at its seed URL.
//
// URLs are dequeued in first-in first-out order until the frontier is empty
// or MaxPages URLs have been dequeued, failures included. A page that cannot
// be fetched or parsed is logged and skipped without retry. A page with fewer
// than cdpsupport.MinWordCount words produces no document and its links are
// not followed. Cancelling the context ends the crawl early and returns the
// documents gathered so far.
func (c *Crawler) Crawl(ctx context.Context, platform *cdpsupport.Platform) ([]*cdpsupport.Document, error) {
	seed, err := url.Parse(platform.SeedURL)
	if err != nil || seed.Host == "" {
		return nil, cdpsupport.Errorf(cdpsupport.EINVALID, "invalid seed URL %q for %s", platform.SeedURL, platform.ID)
	}

	logger := c.logger().With("platform", platform.ID)
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(platform.SeedURL)

	begin := time.Now()
	docs := []*cdpsupport.Document{}
	visited := 0

	for visited < maxPages {
		if ctx.Err() != nil {
			logger.Warn("crawl canceled", "visited", visited, "err", ctx.Err())
			break
		}

		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}
		visited++

		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, seed.Host); err != nil {
				break
			}
		}

		doc, links, err := c.visit(ctx, platform, pageURL)
		switch {
		case err != nil:
			logger.Warn("skipping page", "url", pageURL, "err", err)
			c.report(ProgressEvent{Type: ProgressFailed, Platform: platform.ID, URL: pageURL, Visited: visited, Kept: len(docs), Error: err})
			continue
		case doc == nil:
			logger.Debug("skipping thin page", "url", pageURL)
			c.report(ProgressEvent{Type: ProgressThin, Platform: platform.ID, URL: pageURL, Visited: visited, Kept: len(docs)})
			continue
		}

		docs = append(docs, doc)
		c.report(ProgressEvent{Type: ProgressKept, Platform: platform.ID, URL: pageURL, Visited: visited, Kept: len(docs)})

		for _, link := range links {
			frontier.Push(link)
		}
	}

	logger.Info("crawl finished",
		"visited", visited,
		"kept", len(docs),
		"queued", frontier.Len(),
		"duration", time.Since(begin),
	)
	c.report(ProgressEvent{Type: ProgressFinished, Platform: platform.ID, Visited: visited, Kept: len(docs)})

	return docs, nil
}

// visit fetches and processes a single page. It returns a nil document
// for pages that are too thin to keep.
func (c *Crawler) visit(ctx context.Context, platform *cdpsupport.Platform, pageURL string) (*cdpsupport.Document, []string, error) {
	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		return nil, nil, fmt.Errorf("extract: %w", err)
	}
	if cdpsupport.WordCount(extracted.Content) < cdpsupport.MinWordCount {
		return nil, nil, nil
	}

	links, err := c.Links.ExtractLinks(html, platform.SeedURL)
	if err != nil {
		return nil, nil, fmt.Errorf("extract links: %w", err)
	}

	return &cdpsupport.Document{
		Title:    extracted.Title,
		URL:      pageURL,
		Content:  cdpsupport.Truncate(extracted.Content, cdpsupport.MaxContentLength),
		Platform: platform.ID,
	}, links, nil
}

func (c *Crawler) report(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
