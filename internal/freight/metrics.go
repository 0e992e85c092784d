package freight

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK      = "ok"
	outcomeNoQuote = "no_quote"
	outcomeError   = "error"
)

// Metrics records carrier quote outcomes and latency.
type Metrics struct {
	quotes   *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics registers the freight metrics on reg; a nil reg yields no-op metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}

	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_freight_quotes_total",
		Help: "Freight quotes requested from the carrier, by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_freight_quote_duration_seconds",
		Help:    "Duration of carrier quote calls in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(quotes, duration)

	return &Metrics{
		quotes:   quotes,
		duration: duration,
	}
}

func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}
