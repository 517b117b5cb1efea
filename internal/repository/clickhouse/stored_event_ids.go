package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
)

// StoredEventIDs returns the subset of ids already stored for a coin/network.
func (r *Repository) StoredEventIDs(ctx context.Context, coin model.Coin, network model.Network, ids []string) ([]string, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("stored_event_ids", coin, network, err, start)
	}()

	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
SELECT groupUniqArray(id) AS ids
FROM event_summaries
WHERE coin = ? AND network = ? AND has(?, id)`

	var stored []string
	if err = r.conn.QueryRow(ctx, query, string(coin), string(network), ids).Scan(&stored); err != nil {
		return nil, fmt.Errorf("query stored event ids: %w", err)
	}
	return stored, nil
}
