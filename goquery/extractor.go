package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cdpsupport"
)

// Ensure Extractor implements cdpsupport.Extractor at compile time.
var _ cdpsupport.Extractor = (*Extractor)(nil)

// UntitledPage is the title used when a page has no title element.
const UntitledPage = "Untitled"

// contentContainers are the elements considered as main content wrappers.
const contentContainers = "div, article, main, section"

// contentClass matches class names used by common documentation layouts.
var contentClass = regexp.MustCompile(`(content|main|article|docs)`)

// Extractor picks the main text of a documentation page.
//
// Candidates are div, article, main and section elements with a class
// matching contentClass; the body is the only candidate when none match.
// The candidate with the most words wins, the earliest one on ties.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the HTML and returns its title and main text.
func (e *Extractor) Extract(rawHTML string) (*cdpsupport.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, cdpsupport.Errorf(cdpsupport.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, cdpsupport.Errorf(cdpsupport.EINVALID, "failed to parse HTML: %v", err)
	}

	candidates := doc.Find(contentContainers).FilterFunction(hasContentClass)
	if candidates.Length() == 0 {
		candidates = doc.Find("body").First()
	}

	var content string
	best := -1
	candidates.Each(func(_ int, sel *goquery.Selection) {
		text := Text(sel)
		if n := cdpsupport.WordCount(text); n > best {
			best = n
			content = text
		}
	})

	return &cdpsupport.ExtractResult{
		Title:   Title(doc),
		Content: cdpsupport.Truncate(content, cdpsupport.MaxContentLength),
	}, nil
}

// Title returns the trimmed text of the document's first title element,
// or UntitledPage.
func Title(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return UntitledPage
}

func hasContentClass(_ int, sel *goquery.Selection) bool {
	class, ok := sel.Attr("class")
	if !ok {
		return false
	}
	for _, name := range strings.Fields(class) {
		if contentClass.MatchString(name) {
			return true
		}
	}
	return false
}
