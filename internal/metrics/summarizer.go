package metrics

import (
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	summarizerEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "summarizer",
		Name:      "events_total",
		Help:      "Count of summarized events by kind.",
	}, []string{"coin", "network", "kind", "status"})

	summarizerBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "summarizer",
		Name:      "batch_duration_seconds",
		Help:      "Duration of summarizing a feed.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	summarizerBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "summarizer",
		Name:      "batch_size",
		Help:      "Number of events per summarized feed.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	}, []string{"coin", "network"})

	summarizerBatchFailures = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "summarizer",
		Name:      "batch_failures",
		Help:      "Number of events rejected in the last summarized feed.",
	}, []string{"coin", "network"})
)

// Summarizer tracks event summarization.
type Summarizer struct {
	coin    model.Coin
	network model.Network
}

// NewSummarizer constructs a Summarizer metrics collector.
func NewSummarizer(coin model.Coin, network model.Network) *Summarizer {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Summarizer{coin: coin, network: network}
}

func (m Summarizer) ObserveEvent(kind model.EventKind, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	switch kind {
	case model.EventDoubleSpend, model.EventSpendingReorgedCoinbase:
	default:
		kind = "unknown"
	}
	summarizerEventsTotal.WithLabelValues(string(m.coin), string(m.network), string(kind), status).Inc()
}

func (m Summarizer) ObserveBatch(err error, events, failures int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	summarizerBatchDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	summarizerBatchSize.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(events))
	summarizerBatchFailures.WithLabelValues(string(m.coin), string(m.network)).Set(float64(failures))
}
