package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
)

// InsertEventSummaries stores summary rows in ClickHouse.
func (r *Repository) InsertEventSummaries(ctx context.Context, coin model.Coin, network model.Network, summaries []model.Summary) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_event_summaries", coin, network, err, start)
	}()

	if len(summaries) == 0 {
		return nil
	}

	const query = `
INSERT INTO event_summaries (
	coin,
	network,
	id,
	kind,
	sort_height,
	main_chain_block_hash,
	main_chain_txid,
	conflict_block_hash,
	conflict_block_height,
	conflict_txid,
	orphaned_txids,
	total_sat
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare event summaries batch: %w", err)
	}

	for _, s := range summaries {
		var mainChainBlockHash string
		if s.MainChainBlock != nil {
			mainChainBlockHash = s.MainChainBlock.Hash
		}
		if err = batch.Append(
			string(coin),
			string(network),
			s.ID,
			string(s.Kind),
			s.SortHeight,
			mainChainBlockHash,
			s.MainChainTxID,
			s.ConflictBlock.Hash,
			s.ConflictBlock.Height,
			s.ConflictTxID,
			s.OrphanedTxIDs,
			s.TotalSat,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append event summary %s: %w", s.ID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert event summaries: %w", err)
	}
	r.metrics.AddRows("insert_event_summaries", coin, network, len(summaries))
	return nil
}
