// Package readability implements cdpsupport.Extractor using go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements cdpsupport.Extractor at compile time.
var _ cdpsupport.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the title and plain text of the
// main article.
func (e *Extractor) Extract(rawHTML string) (*cdpsupport.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, cdpsupport.Errorf(cdpsupport.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	text, err := goquery.HTMLText(article.Content)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = goquery.UntitledPage
	}

	return &cdpsupport.ExtractResult{
		Title:   title,
		Content: cdpsupport.Truncate(text, cdpsupport.MaxContentLength),
	}, nil
}
