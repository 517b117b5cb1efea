package metrics

import (
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "clickhouse_repository",
		Name:      "operations_total",
		Help:      "Count of event summary storage operations.",
	}, []string{"operation", "coin", "network", "status"})
	repositoryOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "clickhouse_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of event summary storage operations.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms..10s
	}, []string{"operation", "coin", "network", "status"})
	repositoryRowsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "clickhouse_repository",
		Name:      "rows_written_total",
		Help:      "Count of event summary rows written.",
	}, []string{"operation", "coin", "network"})
)

// ClickhouseRepository tracks metrics for the event summary store.
type ClickhouseRepository struct{}

func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe records duration and status of a storage operation.
func (m ClickhouseRepository) Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c, n := chainLabels(coin, network)
	repositoryOperationsTotal.WithLabelValues(operation, c, n, status).Inc()
	repositoryOperationDuration.WithLabelValues(operation, c, n, status).Observe(time.Since(started).Seconds())
}

// AddRows counts rows accepted by a successful write.
func (m ClickhouseRepository) AddRows(operation string, coin model.Coin, network model.Network, rows int) {
	c, n := chainLabels(coin, network)
	repositoryRowsWritten.WithLabelValues(operation, c, n).Add(float64(rows))
}

func chainLabels(coin model.Coin, network model.Network) (string, string) {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return string(coin), string(network)
}
