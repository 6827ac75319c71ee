package crawl_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements cdpsupport.DomainLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ cdpsupport.DomainLimiter = crawl.NewDomainLimiter(1)
	})

	t.Run("first request to a domain is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "segment.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("rate limits requests to same domain", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10) // 100ms between requests
		require.NoError(t, limiter.Wait(context.Background(), "segment.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "segment.com")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different domains have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "segment.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "docs.lytics.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond, "different domain should not wait")
	})

	t.Run("non-positive rate disables limiting", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0)

		start := time.Now()
		for range 20 {
			require.NoError(t, limiter.Wait(context.Background(), "segment.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "segment.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "segment.com")
		assert.Error(t, err, "should fail when context times out")
	})

	t.Run("concurrent requests all complete", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(100)

		var wg sync.WaitGroup
		var completed atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background(), "segment.com"); err == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load())
	})
}
