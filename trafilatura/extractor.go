// Package trafilatura implements cdpsupport.Extractor using go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements cdpsupport.Extractor at compile time.
var _ cdpsupport.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the title and plain text of the
// main content.
func (e *Extractor) Extract(rawHTML string) (*cdpsupport.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, cdpsupport.Errorf(cdpsupport.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if title == "" {
		title = goquery.UntitledPage
	}

	return &cdpsupport.ExtractResult{
		Title:   title,
		Content: cdpsupport.Truncate(strings.Join(strings.Fields(result.ContentText), " "), cdpsupport.MaxContentLength),
	}, nil
}
