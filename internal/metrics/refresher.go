package metrics

import (
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refresherRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "refresher",
		Name:      "refresh_total",
		Help:      "Count of feed refresh iterations.",
	}, []string{"coin", "network", "status"})

	refresherRefreshDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "refresher",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of a feed refresh iteration.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	refresherEvents = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "refresher",
		Name:      "events",
		Help:      "Number of events in the published snapshot by kind.",
	}, []string{"coin", "network", "kind"})

	refresherPersisted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "refresher",
		Name:      "persisted_summaries_total",
		Help:      "Count of summaries written to storage.",
	}, []string{"coin", "network"})
)

type Refresher struct {
	coin    model.Coin
	network model.Network
}

func NewRefresher(coin model.Coin, network model.Network) *Refresher {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Refresher{coin: coin, network: network}
}

func (m Refresher) ObserveRefresh(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	refresherRefreshTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	refresherRefreshDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func (m Refresher) SetEvents(kind model.EventKind, count int) {
	refresherEvents.WithLabelValues(string(m.coin), string(m.network), string(kind)).Set(float64(count))
}

func (m Refresher) AddPersisted(count int) {
	refresherPersisted.WithLabelValues(string(m.coin), string(m.network)).Add(float64(count))
}
