// Package summary classifies feed events and derives their summary rows and detail view-models.
package summary

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/goodnatureofminers/doublespend-viewer/internal/outpoint"
	"github.com/goodnatureofminers/doublespend-viewer/pkg/safe"
)

// Label returns the display classification of kind.
func Label(kind model.EventKind) string {
	switch kind {
	case model.EventDoubleSpend:
		return "Double spend"
	case model.EventSpendingReorgedCoinbase:
		return "Spending reorged coinbase"
	default:
		return "Unknown"
	}
}

// SortKey returns the height events are ordered by: the main chain block for double
// spends and the orphaned block for reorged coinbase spends.
func SortKey(ev model.Event) (uint64, error) {
	if err := ev.Validate(); err != nil {
		return 0, err
	}
	if ev.Kind == model.EventDoubleSpend {
		return ev.DoubleSpend.MainChainBlock.Height, nil
	}
	return ev.ReorgedCoinbase.OrphanedBlock.Height, nil
}

// Summarize derives the summary row of ev.
func Summarize(ev model.Event) (model.Summary, error) {
	if err := validate(ev); err != nil {
		return model.Summary{}, err
	}
	height, err := SortKey(ev)
	if err != nil {
		return model.Summary{}, err
	}

	if ev.Kind == model.EventDoubleSpend {
		d := ev.DoubleSpend
		groups, err := conflictGroups(ev.Position, d.DoubleSpentOutpoints)
		if err != nil {
			return model.Summary{}, err
		}
		total, txids, err := aggregate(groups)
		if err != nil {
			return model.Summary{}, fmt.Errorf("event %d: %w", ev.Position, err)
		}
		value, err := toCoins(total)
		if err != nil {
			return model.Summary{}, fmt.Errorf("event %d: %w", ev.Position, err)
		}
		mainBlock := d.MainChainBlock
		first := d.DoubleSpentOutpoints[0].AlsoSpentIn
		return model.Summary{
			ID:             ev.ID(),
			Position:       ev.Position,
			Kind:           ev.Kind,
			Label:          Label(ev.Kind),
			MainChainBlock: &mainBlock,
			MainChainTxID:  d.MainChainTx.TxID,
			ConflictBlock:  first.Block,
			ConflictTxID:   first.Tx.TxID,
			OrphanedTxIDs:  txids,
			TotalSat:       total,
			Value:          value,
			SortHeight:     height,
		}, nil
	}

	d := ev.ReorgedCoinbase
	group, err := coinbaseGroup(d)
	if err != nil {
		return model.Summary{}, fmt.Errorf("event %d: %w", ev.Position, err)
	}
	return model.Summary{
		ID:            ev.ID(),
		Position:      ev.Position,
		Kind:          ev.Kind,
		Label:         Label(ev.Kind),
		ConflictBlock: d.OrphanedBlock,
		ConflictTxID:  d.OrphanedTx.TxID,
		OrphanedTxIDs: []string{d.OrphanedTx.TxID},
		TotalSat:      group.ValueSat,
		Value:         group.Value,
		SortHeight:    height,
	}, nil
}

// Detail derives the detail view-model of ev. For double spends the detail
// transaction is the orphaned spend of the first double-spent outpoint.
func Detail(ev model.Event) (model.Detail, error) {
	if err := validate(ev); err != nil {
		return model.Detail{}, err
	}

	var (
		block     model.Block
		tx        model.Transaction
		known     outpoint.Set
		conflicts []model.ConflictGroup
	)
	if ev.Kind == model.EventDoubleSpend {
		d := ev.DoubleSpend
		groups, err := conflictGroups(ev.Position, d.DoubleSpentOutpoints)
		if err != nil {
			return model.Detail{}, err
		}
		ids := make([]string, 0, len(d.DoubleSpentOutpoints))
		for _, dso := range d.DoubleSpentOutpoints {
			ids = append(ids, dso.Outpoint)
		}
		first := d.DoubleSpentOutpoints[0].AlsoSpentIn
		block, tx, known, conflicts = first.Block, first.Tx, outpoint.NewSet(ids...), groups
	} else {
		d := ev.ReorgedCoinbase
		group, err := coinbaseGroup(d)
		if err != nil {
			return model.Detail{}, fmt.Errorf("event %d: %w", ev.Position, err)
		}
		block, tx, known = d.OrphanedBlock, d.OrphanedTx, outpoint.NewSet(d.CoinbasesSpent...)
		conflicts = []model.ConflictGroup{group}
	}

	inputs, err := inputRows(tx, known)
	if err != nil {
		return model.Detail{}, fmt.Errorf("event %d: %w", ev.Position, err)
	}
	outputs, err := outputRows(tx)
	if err != nil {
		return model.Detail{}, fmt.Errorf("event %d: %w", ev.Position, err)
	}

	return model.Detail{
		ID:        ev.ID(),
		Kind:      ev.Kind,
		Label:     Label(ev.Kind),
		Block:     block,
		TxID:      tx.TxID,
		Inputs:    inputs,
		Outputs:   outputs,
		Conflicts: conflicts,
	}, nil
}

func validate(ev model.Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	if ev.Kind == model.EventDoubleSpend {
		d := ev.DoubleSpend
		if d.MainChainTx.TxID == "" {
			return model.Malformed(ev.Position, "mainChainTx.txid is empty")
		}
		for i, dso := range d.DoubleSpentOutpoints {
			if dso.Outpoint == "" {
				return model.Malformed(ev.Position, "doubleSpentOutpoints[%d].outpoint is empty", i)
			}
			if dso.AlsoSpentIn.Tx.TxID == "" {
				return model.Malformed(ev.Position, "doubleSpentOutpoints[%d].alsoSpentIn.tx.txid is empty", i)
			}
		}
		return nil
	}
	if ev.ReorgedCoinbase.OrphanedTx.TxID == "" {
		return model.Malformed(ev.Position, "orphanedTx.txid is empty")
	}
	return nil
}

// conflictGroups groups double-spent outpoints by orphaned transaction in first-seen order.
// Each transaction's outputs are valued once however many outpoints reference it.
func conflictGroups(position int, dsos []model.DoubleSpentOutpoint) ([]model.ConflictGroup, error) {
	groups := make([]model.ConflictGroup, 0, len(dsos))
	index := make(map[string]int, len(dsos))
	for _, dso := range dsos {
		txid := dso.AlsoSpentIn.Tx.TxID
		if i, ok := index[txid]; ok {
			groups[i].Outpoints = append(groups[i].Outpoints, dso.Outpoint)
			continue
		}
		sat, err := txValue(dso.AlsoSpentIn.Tx)
		if err != nil {
			return nil, fmt.Errorf("event %d tx %s: %w", position, txid, err)
		}
		value, err := toCoins(sat)
		if err != nil {
			return nil, fmt.Errorf("event %d tx %s: %w", position, txid, err)
		}
		index[txid] = len(groups)
		groups = append(groups, model.ConflictGroup{
			Block:     dso.AlsoSpentIn.Block,
			TxID:      txid,
			ValueSat:  sat,
			Value:     value,
			Outpoints: []string{dso.Outpoint},
		})
	}
	return groups, nil
}

func coinbaseGroup(d *model.ReorgedCoinbaseDetails) (model.ConflictGroup, error) {
	sat, err := txValue(d.OrphanedTx)
	if err != nil {
		return model.ConflictGroup{}, fmt.Errorf("tx %s: %w", d.OrphanedTx.TxID, err)
	}
	value, err := toCoins(sat)
	if err != nil {
		return model.ConflictGroup{}, fmt.Errorf("tx %s: %w", d.OrphanedTx.TxID, err)
	}
	return model.ConflictGroup{
		Block:     d.OrphanedBlock,
		TxID:      d.OrphanedTx.TxID,
		ValueSat:  sat,
		Value:     value,
		Outpoints: append([]string(nil), d.CoinbasesSpent...),
	}, nil
}

func aggregate(groups []model.ConflictGroup) (uint64, []string, error) {
	txids := make([]string, 0, len(groups))
	values := make([]uint64, 0, len(groups))
	for _, g := range groups {
		txids = append(txids, g.TxID)
		values = append(values, g.ValueSat)
	}
	total, err := safe.SumUint64(values...)
	if err != nil {
		return 0, nil, fmt.Errorf("aggregate value: %w", err)
	}
	return total, txids, nil
}

func txValue(tx model.Transaction) (uint64, error) {
	values := make([]uint64, 0, len(tx.Vout))
	for _, out := range tx.Vout {
		values = append(values, out.ValueSat)
	}
	total, err := safe.SumUint64(values...)
	if err != nil {
		return 0, fmt.Errorf("sum outputs: %w", err)
	}
	return total, nil
}

func toCoins(sat uint64) (float64, error) {
	amount, err := safe.Int64(sat)
	if err != nil {
		return 0, fmt.Errorf("convert %d satoshis: %w", sat, err)
	}
	return btcutil.Amount(amount).ToBTC(), nil
}

func inputRows(tx model.Transaction, known outpoint.Set) ([]model.InputRow, error) {
	rows := make([]model.InputRow, 0, len(tx.Vin))
	for i, in := range tx.Vin {
		id, err := outpoint.VinID(in)
		if err != nil {
			return nil, fmt.Errorf("tx %s input %d: %w", tx.TxID, i, err)
		}
		implicated, err := outpoint.IsImplicated(in, known)
		if err != nil {
			return nil, fmt.Errorf("tx %s input %d: %w", tx.TxID, i, err)
		}
		rows = append(rows, model.InputRow{
			TxID:       in.TxID,
			Vout:       in.Vout,
			Outpoint:   id,
			Implicated: implicated,
		})
	}
	return rows, nil
}

func outputRows(tx model.Transaction) ([]model.OutputRow, error) {
	rows := make([]model.OutputRow, 0, len(tx.Vout))
	for i, out := range tx.Vout {
		value, err := toCoins(out.ValueSat)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d: %w", tx.TxID, i, err)
		}
		rows = append(rows, model.OutputRow{
			Index:    i,
			To:       append([]string{}, out.To...),
			Type:     out.Type,
			ValueSat: out.ValueSat,
			Value:    value,
		})
	}
	return rows, nil
}
