// Package prometheus provides Prometheus instrumentation for pagetext services.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/pagetext"
	"github.com/prometheus/client_golang/prometheus"
)

var _ pagetext.Fetcher = (*MetricsFetcher)(nil)

// OutcomeOK labels successful fetches.
const OutcomeOK = "ok"

// MetricsFetcher wraps a Fetcher and records a counter of fetches by outcome
// and a histogram of fetch durations. Failed fetches are labelled with their
// error code.
type MetricsFetcher struct {
	next     pagetext.Fetcher
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsFetcher creates a MetricsFetcher and registers its collectors with reg.
func NewMetricsFetcher(next pagetext.Fetcher, reg prometheus.Registerer) (*MetricsFetcher, error) {
	f := &MetricsFetcher{
		next: next,
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pagetext",
			Name:      "fetches_total",
			Help:      "Page fetches by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pagetext",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching and parsing a page.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	for _, c := range []prometheus.Collector{f.total, f.duration} {
		if err := reg.Register(c); err != nil {
			return nil, &pagetext.Error{Code: pagetext.EINTERNAL, Message: "failed to register fetch metrics", Err: err}
		}
	}
	return f, nil
}

// Fetch delegates to the wrapped fetcher and records the outcome.
func (f *MetricsFetcher) Fetch(ctx context.Context, url string) (doc *pagetext.Document, err error) {
	defer func(begin time.Time) {
		outcome := OutcomeOK
		if err != nil {
			outcome = pagetext.ErrorCode(err)
		}
		f.total.WithLabelValues(outcome).Inc()
		f.duration.WithLabelValues(outcome).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *MetricsFetcher) Close() error {
	return f.next.Close()
}
