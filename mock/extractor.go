package mock

import "github.com/fwojciec/cdpsupport"

var (
	_ cdpsupport.Extractor     = (*Extractor)(nil)
	_ cdpsupport.LinkExtractor = (*LinkExtractor)(nil)
)

// Extractor is a mock implementation of cdpsupport.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*cdpsupport.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*cdpsupport.ExtractResult, error) {
	return e.ExtractFn(html)
}

// LinkExtractor is a mock implementation of cdpsupport.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, seedURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html, seedURL string) ([]string, error) {
	return e.ExtractLinksFn(html, seedURL)
}
