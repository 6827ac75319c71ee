package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/crawl"
	"github.com/fwojciec/cdpsupport/goquery"
	"github.com/fwojciec/cdpsupport/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedURL = "https://docs.example.com/docs/"

var testPlatform = &cdpsupport.Platform{
	ID:      cdpsupport.PlatformSegment,
	Name:    "Segment",
	SeedURL: seedURL,
}

// page renders an HTML page with enough words to be kept and the given links.
func page(title string, links ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><head><title>%s</title></head><body>", title)
	b.WriteString(`<div class="content">`)
	b.WriteString(strings.Repeat("customer data platform documentation words ", 6))
	b.WriteString("</div>")
	for _, l := range links {
		fmt.Fprintf(&b, `<a href="%s">link</a>`, l)
	}
	b.WriteString("</body></html>")
	return b.String()
}

// siteFetcher serves pages from a map and records every fetch.
type siteFetcher struct {
	mu      sync.Mutex
	pages   map[string]string
	fetched []string
}

func (s *siteFetcher) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.fetched = append(s.fetched, url)
			html, ok := s.pages[url]
			if !ok {
				return "", cdpsupport.Errorf(cdpsupport.ENOTFOUND, "HTTP 404")
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

func newCrawler(f cdpsupport.Fetcher) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher:   f,
		Extractor: goquery.NewExtractor(),
		Links:     goquery.NewLinkExtractor(),
	}
}

func TestCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("keeps only same-host pages", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			seedURL: page("Home", "https://elsewhere.example.org/a", "https://cdn.example.net/b"),
		}}

		docs, err := newCrawler(site.fetcher()).Crawl(context.Background(), testPlatform)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, seedURL, docs[0].URL)
		assert.Equal(t, "Home", docs[0].Title)
		assert.Equal(t, cdpsupport.PlatformSegment, docs[0].Platform)
		assert.Equal(t, []string{seedURL}, site.fetched)
	})

	t.Run("walks breadth first", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			seedURL:                                page("Home", "/docs/a", "/docs/b"),
			"https://docs.example.com/docs/a":      page("A", "/docs/a/deep"),
			"https://docs.example.com/docs/b":      page("B"),
			"https://docs.example.com/docs/a/deep": page("Deep"),
		}}

		docs, err := newCrawler(site.fetcher()).Crawl(context.Background(), testPlatform)
		require.NoError(t, err)
		assert.Equal(t, []string{
			seedURL,
			"https://docs.example.com/docs/a",
			"https://docs.example.com/docs/b",
			"https://docs.example.com/docs/a/deep",
		}, site.fetched)
		assert.Len(t, docs, 4)
	})

	t.Run("skips thin pages and does not follow their links", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			seedURL:                                page("Home", "/docs/thin"),
			"https://docs.example.com/docs/thin":   `<html><body><div class="content">too short</div><a href="/docs/hidden">x</a></body></html>`,
			"https://docs.example.com/docs/hidden": page("Hidden"),
		}}

		docs, err := newCrawler(site.fetcher()).Crawl(context.Background(), testPlatform)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.NotContains(t, site.fetched, "https://docs.example.com/docs/hidden")
	})

	t.Run("never revisits a URL", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			seedURL:                           page("Home", "/docs/", "/docs/#top", "/docs/a"),
			"https://docs.example.com/docs/a": page("A", "/docs/", "/docs/a"),
		}}

		docs, err := newCrawler(site.fetcher()).Crawl(context.Background(), testPlatform)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
		assert.Equal(t, []string{seedURL, "https://docs.example.com/docs/a"}, site.fetched)
	})

	t.Run("stops at the page cap", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{}
		links := make([]string, 0, 10)
		for i := range 10 {
			path := fmt.Sprintf("/docs/p%d", i)
			links = append(links, path)
			pages["https://docs.example.com"+path] = page(path)
		}
		pages[seedURL] = page("Home", links...)
		site := &siteFetcher{pages: pages}

		c := newCrawler(site.fetcher())
		c.MaxPages = 3

		docs, err := c.Crawl(context.Background(), testPlatform)
		require.NoError(t, err)
		assert.Len(t, docs, 3)
		assert.Len(t, site.fetched, 3)
	})

	t.Run("failed fetches count against the cap and are skipped", func(t *testing.T) {
		t.Parallel()

		site := &siteFetcher{pages: map[string]string{
			seedURL:                            page("Home", "/docs/missing", "/docs/ok"),
			"https://docs.example.com/docs/ok": page("OK"),
		}}

		var events []crawl.ProgressEvent
		c := newCrawler(site.fetcher())
		c.Progress = func(e crawl.ProgressEvent) { events = append(events, e) }

		docs, err := c.Crawl(context.Background(), testPlatform)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "https://docs.example.com/docs/ok", docs[1].URL)

		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressFailed, events[1].Type)
		assert.Equal(t, "https://docs.example.com/docs/missing", events[1].URL)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)
		assert.Equal(t, 3, events[3].Visited)
		assert.Equal(t, 2, events[3].Kept)
	})

	t.Run("returns partial results when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				cancel()
				return page("Home", "/docs/a"), nil
			},
		}

		docs, err := newCrawler(f).Crawl(ctx, testPlatform)
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("seed fetch failure yields no documents", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("connection refused")
			},
		}

		docs, err := newCrawler(f).Crawl(context.Background(), testPlatform)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("rejects an invalid seed URL", func(t *testing.T) {
		t.Parallel()

		p := &cdpsupport.Platform{ID: cdpsupport.PlatformLytics, Name: "Lytics", SeedURL: "::bad"}
		_, err := newCrawler(&mock.Fetcher{}).Crawl(context.Background(), p)
		require.Error(t, err)
		assert.Equal(t, cdpsupport.EINVALID, cdpsupport.ErrorCode(err))
	})
}

func TestProgressType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kept", crawl.ProgressKept.String())
	assert.Equal(t, "thin", crawl.ProgressThin.String())
	assert.Equal(t, "failed", crawl.ProgressFailed.String())
	assert.Equal(t, "finished", crawl.ProgressFinished.String())
}
