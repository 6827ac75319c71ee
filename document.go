package cdpsupport

import (
	"context"
	"fmt"
	"strings"
)

// Content limits applied to crawled pages.
const (
	// MaxContentLength is the maximum number of characters kept per page.
	MaxContentLength = 8000

	// MinWordCount is the minimum number of words a page needs to be kept.
	MinWordCount = 20
)

// Document represents the extracted text of a crawled documentation page.
// Documents are immutable once cached.
type Document struct {
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Content   string     `json:"content"`
	Platform  PlatformID `json:"platform"`
	Synthetic bool       `json:"synthetic,omitempty"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Platform == "" {
		return Errorf(EINVALID, "document platform required")
	}
	return nil
}

// NewSyntheticDocument returns a placeholder used when no real content
// exists for a platform.
func NewSyntheticDocument(p *Platform) *Document {
	return &Document{
		Title:     p.DisplayName() + " Documentation",
		URL:       p.SeedURL,
		Content:   fmt.Sprintf("This is a placeholder for %s documentation. The actual content could not be retrieved.", p.ID),
		Platform:  p.ID,
		Synthetic: true,
	}
}

// HasSynthetic reports whether any of the documents is a placeholder.
func HasSynthetic(docs []*Document) bool {
	for _, d := range docs {
		if d.Synthetic {
			return true
		}
	}
	return false
}

// URLs returns the document URLs in order.
func URLs(docs []*Document) []string {
	urls := make([]string, 0, len(docs))
	for _, d := range docs {
		urls = append(urls, d.URL)
	}
	return urls
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// DocumentStore persists per-platform document lists.
type DocumentStore interface {
	// LoadDocuments returns the persisted documents for a platform.
	// Returns ENOTFOUND if nothing has been persisted for the platform.
	LoadDocuments(ctx context.Context, platform PlatformID) ([]*Document, error)

	// SaveDocuments persists the documents for a platform,
	// replacing anything stored before.
	SaveDocuments(ctx context.Context, platform PlatformID, docs []*Document) error
}

// DocumentLibrary provides the loaded documents of every platform.
type DocumentLibrary interface {
	// Documents returns the documents loaded for a platform, in crawl order.
	Documents(platform PlatformID) []*Document

	// Ready reports whether every platform has finished loading.
	Ready() bool

	// Err returns the last load error, if any.
	Err() error
}

// Crawler produces documents for a platform by crawling its documentation site.
type Crawler interface {
	// Crawl walks the platform's site starting at its seed URL.
	// Per-page failures are skipped; the returned error is reserved
	// for problems that prevent the crawl from starting.
	Crawl(ctx context.Context, platform *Platform) ([]*Document, error)
}
