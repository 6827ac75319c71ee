package prometheus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/crawl"
	"github.com/fwojciec/cdpsupport/mock"
	cdpprom "github.com/fwojciec/cdpsupport/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetrics(t *testing.T) (*prom.Registry, *cdpprom.Metrics) {
	t.Helper()

	reg := prom.NewRegistry()
	m, err := cdpprom.NewMetrics(reg)
	require.NoError(t, err)
	return reg, m
}

func TestNewMetrics_RejectsDoubleRegistration(t *testing.T) {
	t.Parallel()

	reg, _ := newMetrics(t)
	_, err := cdpprom.NewMetrics(reg)

	require.Error(t, err)
}

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	reg, m := newMetrics(t)
	fail := false
	inner := &mock.Completer{
		CompleteFn: func(context.Context, cdpsupport.CompletionRequest) (string, error) {
			if fail {
				return "", errors.New("boom")
			}
			return "ok", nil
		},
	}
	c := cdpprom.NewCompleter(inner, m)

	_, err := c.Complete(context.Background(), cdpsupport.CompletionRequest{Tier: cdpsupport.TierSmall})
	require.NoError(t, err)
	fail = true
	_, err = c.Complete(context.Background(), cdpsupport.CompletionRequest{Tier: cdpsupport.TierLarge})
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["cdpsupport_completions_total"])
	assert.True(t, names["cdpsupport_completion_duration_seconds"])

	count, err := testutil.GatherAndCount(reg, "cdpsupport_completions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAnswerer_Answer(t *testing.T) {
	t.Parallel()

	reg, m := newMetrics(t)
	inner := &mock.Answerer{
		AnswerFn: func(context.Context, string) *cdpsupport.Answer {
			return &cdpsupport.Answer{Text: "x", Source: cdpsupport.SourceOffTopic}
		},
	}
	a := cdpprom.NewAnswerer(inner, m)

	a.Answer(context.Background(), "weather?")
	a.Answer(context.Background(), "weather again?")

	count, err := testutil.GatherAndCount(reg, "cdpsupport_answers_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_ObserveCrawl(t *testing.T) {
	t.Parallel()

	reg, m := newMetrics(t)

	m.ObserveCrawl(crawl.ProgressEvent{Type: crawl.ProgressKept, Platform: cdpsupport.PlatformSegment})
	m.ObserveCrawl(crawl.ProgressEvent{Type: crawl.ProgressKept, Platform: cdpsupport.PlatformSegment})
	m.ObserveCrawl(crawl.ProgressEvent{Type: crawl.ProgressFailed, Platform: cdpsupport.PlatformSegment})
	m.ObserveCrawl(crawl.ProgressEvent{Type: crawl.ProgressFinished, Platform: cdpsupport.PlatformSegment})

	count, err := testutil.GatherAndCount(reg, "cdpsupport_crawl_pages_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
