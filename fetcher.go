package cdpsupport

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML body of the URL.
	// Any response other than 200 OK is an error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	Close() error
}
