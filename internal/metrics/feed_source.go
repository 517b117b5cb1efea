package metrics

import (
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "feed_source",
		Name:      "operations_total",
		Help:      "Count of feed source operations.",
	}, []string{"operation", "coin", "network", "status"})
	feedRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "feed_source",
		Name:      "operation_duration_seconds",
		Help:      "Duration of feed source operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "coin", "network", "status"})
)

// FeedSource tracks metrics for feed downloads.
type FeedSource struct {
	coin    model.Coin
	network model.Network
}

// NewFeedSource constructs a metrics collector for feed downloads.
func NewFeedSource(coin model.Coin, network model.Network) *FeedSource {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &FeedSource{coin: coin, network: network}
}

// Observe records a single feed operation outcome and duration.
func (m FeedSource) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	feedRequestsTotal.WithLabelValues(operation, string(m.coin), string(m.network), status).Inc()
	feedRequestDuration.WithLabelValues(operation, string(m.coin), string(m.network), status).Observe(time.Since(started).Seconds())
}
