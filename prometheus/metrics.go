// Package prometheus provides metric decorators for cdpsupport services.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/crawl"
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "cdpsupport"

// Completion outcomes.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics holds the service's collectors.
type Metrics struct {
	answers            *prom.CounterVec
	completions        *prom.CounterVec
	completionDuration *prom.HistogramVec
	crawlPages         *prom.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prom.Registerer) (*Metrics, error) {
	m := &Metrics{
		answers: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Answers returned, by source.",
		}, []string{"source"}),
		completions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "completions_total",
			Help:      "Language model completions, by tier and outcome.",
		}, []string{"tier", "outcome"}),
		completionDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_duration_seconds",
			Help:      "Language model completion latency, by tier.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"tier"}),
		crawlPages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "crawl_pages_total",
			Help:      "Crawled pages, by platform and outcome.",
		}, []string{"platform", "outcome"}),
	}

	for _, c := range []prom.Collector{m.answers, m.completions, m.completionDuration, m.crawlPages} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveCrawl records a crawl progress event. It can be installed as a
// crawl.ProgressFunc.
func (m *Metrics) ObserveCrawl(event crawl.ProgressEvent) {
	if event.Type == crawl.ProgressFinished {
		return
	}
	m.crawlPages.WithLabelValues(string(event.Platform), event.Type.String()).Inc()
}

// Ensure Completer implements cdpsupport.Completer.
var _ cdpsupport.Completer = (*Completer)(nil)

// Completer counts and times completions of the wrapped Completer.
type Completer struct {
	next    cdpsupport.Completer
	metrics *Metrics
}

// NewCompleter wraps next with completion metrics.
func NewCompleter(next cdpsupport.Completer, metrics *Metrics) *Completer {
	return &Completer{next: next, metrics: metrics}
}

// Complete delegates to the wrapped completer and records the outcome.
func (c *Completer) Complete(ctx context.Context, req cdpsupport.CompletionRequest) (string, error) {
	begin := time.Now()
	text, err := c.next.Complete(ctx, req)

	tier := string(req.Tier)
	c.metrics.completionDuration.WithLabelValues(tier).Observe(time.Since(begin).Seconds())
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	c.metrics.completions.WithLabelValues(tier, outcome).Inc()

	return text, err
}

// Ensure Answerer implements cdpsupport.Answerer.
var _ cdpsupport.Answerer = (*Answerer)(nil)

// Answerer counts answers of the wrapped Answerer by source.
type Answerer struct {
	next    cdpsupport.Answerer
	metrics *Metrics
}

// NewAnswerer wraps next with answer metrics.
func NewAnswerer(next cdpsupport.Answerer, metrics *Metrics) *Answerer {
	return &Answerer{next: next, metrics: metrics}
}

// Answer delegates to the wrapped answerer and counts the answer's source.
func (a *Answerer) Answer(ctx context.Context, question string) *cdpsupport.Answer {
	answer := a.next.Answer(ctx, question)
	a.metrics.answers.WithLabelValues(string(answer.Source)).Inc()
	return answer
}
