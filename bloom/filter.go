// Package bloom provides an approximate URL seen-set backed by a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter records URLs that a crawl has already queued or visited.
// It may report false positives but never false negatives.
// It is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Test returns true if the URL might have been recorded.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd records the URL and reports whether it might have been
// recorded before.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

