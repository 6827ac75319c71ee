package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cdpsupport"
)

// Ensure LinkExtractor implements cdpsupport.LinkExtractor at compile time.
var _ cdpsupport.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds crawlable anchors in a page.
//
// Root-relative hrefs are joined to the seed's scheme and host, absolute
// http(s) hrefs are kept as-is, and every other href (page-relative paths,
// fragments, mailto:, javascript:) is dropped. Only links on the seed's host
// are returned.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns same-host absolute URLs in document order,
// deduplicated, with fragments stripped.
func (e *LinkExtractor) ExtractLinks(rawHTML string, seedURL string) ([]string, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || seed.Host == "" {
		return nil, cdpsupport.Errorf(cdpsupport.EINVALID, "invalid seed URL %q", seedURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, cdpsupport.Errorf(cdpsupport.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	links := []string{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		link := normalizeLink(seed, strings.TrimSpace(href))
		if link == "" || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	return links, nil
}

// normalizeLink returns the absolute form of href, or "" when the link
// should not be followed.
func normalizeLink(seed *url.URL, href string) string {
	var abs string
	switch {
	case strings.HasPrefix(href, "//"):
		abs = seed.Scheme + ":" + href
	case strings.HasPrefix(href, "/"):
		abs = seed.Scheme + "://" + seed.Host + href
	case strings.HasPrefix(href, "http"):
		abs = href
	default:
		return ""
	}

	u, err := url.Parse(abs)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host != seed.Host {
		return ""
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
