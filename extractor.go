package cdpsupport

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title, or "Untitled".
	Title string

	// Content is the page's main text, truncated to MaxContentLength.
	Content string
}

// Extractor extracts the main text of an HTML page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// LinkExtractor discovers crawlable links in an HTML page.
type LinkExtractor interface {
	// ExtractLinks returns absolute URLs on the same host as seedURL,
	// in document order, without duplicates.
	ExtractLinks(html string, seedURL string) ([]string, error)
}
