package summary

import "github.com/goodnatureofminers/doublespend-viewer/internal/model"

func tx(txid string, vin []model.Vin, values ...uint64) model.Transaction {
	t := model.Transaction{TxID: txid, Vin: vin}
	for i, v := range values {
		t.Vout = append(t.Vout, model.Vout{ValueSat: v, To: []string{"addr" + string(rune('1'+i))}})
	}
	return t
}

func dso(op string, block model.Block, spentIn model.Transaction) model.DoubleSpentOutpoint {
	return model.DoubleSpentOutpoint{
		Outpoint:    op,
		AlsoSpentIn: model.AlsoSpentIn{Block: block, Tx: spentIn},
	}
}

func doubleSpendEvent(position int, height uint64, dsos ...model.DoubleSpentOutpoint) model.Event {
	return model.Event{
		Kind:     model.EventDoubleSpend,
		Position: position,
		DoubleSpend: &model.DoubleSpendDetails{
			MainChainBlock:       model.Block{Hash: "mainblock", Height: height},
			MainChainTx:          tx("txMain", []model.Vin{{TxID: "txM", Vout: 0}}, 100),
			DoubleSpentOutpoints: dsos,
		},
	}
}

func reorgEvent(position int, height uint64, orphaned model.Transaction, coinbases ...string) model.Event {
	return model.Event{
		Kind:     model.EventSpendingReorgedCoinbase,
		Position: position,
		ReorgedCoinbase: &model.ReorgedCoinbaseDetails{
			OrphanedBlock:  model.Block{Hash: "orphanblock", Height: height},
			OrphanedTx:     orphaned,
			CoinbasesSpent: coinbases,
		},
	}
}
