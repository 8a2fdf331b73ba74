package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scentshop"

// StorefrontMetrics records search and cart activity for the storefront session.
type StorefrontMetrics struct {
	searchDuration *prometheus.HistogramVec
	searchResults  prometheus.Histogram
	searchDegraded prometheus.Counter
	cartOps        *prometheus.CounterVec
	notifications  *prometheus.CounterVec
	sessionFailed  prometheus.Gauge
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a recorder whose methods are no-ops.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	searchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Duration of catalog filter derivations in seconds.",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	}, []string{"ranked"})
	searchResults := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_results",
		Help:      "Number of catalog items returned per search.",
		Buckets:   prometheus.LinearBuckets(0, 1, 10),
	})
	searchDegraded := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_degraded_total",
		Help:      "Searches that failed and degraded to an empty result.",
	})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Cart ledger mutations by operation and outcome.",
	}, []string{"operation", "outcome"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Transient notifications emitted by level.",
	}, []string{"level"})
	sessionFailed := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_failed",
		Help:      "1 once the storefront session entered its terminal failed state.",
	})
	reg.MustRegister(searchDuration, searchResults, searchDegraded, cartOps, notifications, sessionFailed)
	return &StorefrontMetrics{
		searchDuration: searchDuration,
		searchResults:  searchResults,
		searchDegraded: searchDegraded,
		cartOps:        cartOps,
		notifications:  notifications,
		sessionFailed:  sessionFailed,
	}
}

// ObserveSearch records one completed derivation.
func (m *StorefrontMetrics) ObserveSearch(ranked bool, duration time.Duration, results int) {
	if m == nil || m.searchDuration == nil {
		return
	}
	label := "false"
	if ranked {
		label = "true"
	}
	m.searchDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.searchResults.Observe(float64(results))
}

// IncSearchDegraded counts a derivation that failed and returned nothing.
func (m *StorefrontMetrics) IncSearchDegraded() {
	if m == nil || m.searchDegraded == nil {
		return
	}
	m.searchDegraded.Inc()
}

// IncCartOperation counts a ledger mutation.
func (m *StorefrontMetrics) IncCartOperation(operation, outcome string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// IncNotification counts an emitted notification.
func (m *StorefrontMetrics) IncNotification(level string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(level)).Inc()
}

// MarkSessionFailed flips the failed gauge to 1.
func (m *StorefrontMetrics) MarkSessionFailed() {
	if m == nil || m.sessionFailed == nil {
		return
	}
	m.sessionFailed.Set(1)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
