package model

// Summary is the presentable row derived from one event. MainChainBlock and
// MainChainTxID are blank for spendingReorgedCoinbase events.
type Summary struct {
	ID             string    `json:"id"`
	Position       int       `json:"position"`
	Kind           EventKind `json:"kind"`
	Label          string    `json:"label"`
	MainChainBlock *Block    `json:"mainChainBlock,omitempty"`
	MainChainTxID  string    `json:"mainChainTxid,omitempty"`
	ConflictBlock  Block     `json:"conflictBlock"`
	ConflictTxID   string    `json:"conflictTxid"`
	OrphanedTxIDs  []string  `json:"orphanedTxids"`
	TotalSat       uint64    `json:"totalSat"`
	Value          float64   `json:"value"`
	SortHeight     uint64    `json:"sortHeight"`
}

// Detail is the detail view-model of one event.
type Detail struct {
	ID        string          `json:"id"`
	Kind      EventKind       `json:"kind"`
	Label     string          `json:"label"`
	Block     Block           `json:"block"`
	TxID      string          `json:"txid"`
	Inputs    []InputRow      `json:"inputs"`
	Outputs   []OutputRow     `json:"outputs"`
	Conflicts []ConflictGroup `json:"conflicts"`
}

// InputRow is one input of the detail transaction.
type InputRow struct {
	TxID       string `json:"txid"`
	Vout       uint64 `json:"vout"`
	Outpoint   string `json:"outpoint"`
	Implicated bool   `json:"implicated"`
}

// OutputRow is one output of the detail transaction.
type OutputRow struct {
	Index    int      `json:"index"`
	To       []string `json:"to"`
	Type     string   `json:"type,omitempty"`
	ValueSat uint64   `json:"valueSat"`
	Value    float64  `json:"value"`
}

// ConflictGroup is a distinct orphaned transaction with the outpoints it conflicts on.
type ConflictGroup struct {
	Block     Block    `json:"block"`
	TxID      string   `json:"txid"`
	ValueSat  uint64   `json:"valueSat"`
	Value     float64  `json:"value"`
	Outpoints []string `json:"outpoints"`
}

// Batch is the result of summarizing a whole feed.
type Batch struct {
	Summaries []Summary
	Failures  []Failure
}
