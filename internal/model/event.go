package model

import (
	"errors"
	"fmt"
	"strings"
)

// EventKind discriminates the event variants of the feed.
type EventKind string

var (
	// EventDoubleSpend marks an outpoint spent on the main chain and in an orphaned block.
	EventDoubleSpend EventKind = "doubleSpend"
	// EventSpendingReorgedCoinbase marks an orphaned transaction spending a reorged coinbase.
	EventSpendingReorgedCoinbase EventKind = "spendingReorgedCoinbase"
)

// ErrMalformedEvent is returned for records that cannot be classified.
var ErrMalformedEvent = errors.New("malformed event")

// MalformedEventError describes why the record at Position was rejected.
type MalformedEventError struct {
	Position int
	Reason   string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed event at position %d: %s", e.Position, e.Reason)
}

func (e *MalformedEventError) Unwrap() error {
	return ErrMalformedEvent
}

// Malformed builds a MalformedEventError.
func Malformed(position int, format string, args ...any) error {
	return &MalformedEventError{Position: position, Reason: fmt.Sprintf(format, args...)}
}

// DoubleSpentOutpoint is an outpoint also spent by an orphaned transaction.
type DoubleSpentOutpoint struct {
	Outpoint    string      `json:"outpoint"`
	AlsoSpentIn AlsoSpentIn `json:"alsoSpentIn"`
}

// AlsoSpentIn locates the orphaned spend of a double-spent outpoint.
type AlsoSpentIn struct {
	Block Block       `json:"block"`
	Tx    Transaction `json:"tx"`
}

// DoubleSpendDetails is the payload of a doubleSpend event.
type DoubleSpendDetails struct {
	MainChainBlock       Block                 `json:"mainChainBlock"`
	MainChainTx          Transaction           `json:"mainChainTx"`
	DoubleSpentOutpoints []DoubleSpentOutpoint `json:"doubleSpentOutpoints"`
}

// ReorgedCoinbaseDetails is the payload of a spendingReorgedCoinbase event.
type ReorgedCoinbaseDetails struct {
	OrphanedBlock  Block       `json:"orphanedBlock"`
	OrphanedTx     Transaction `json:"orphanedTx"`
	CoinbasesSpent []string    `json:"coinbasesSpent"`
}

// Event is one feed record. Exactly one payload matching Kind is set.
type Event struct {
	Kind            EventKind
	Position        int
	DoubleSpend     *DoubleSpendDetails
	ReorgedCoinbase *ReorgedCoinbaseDetails
}

// Validate checks that the payload matches the discriminator.
func (e Event) Validate() error {
	switch e.Kind {
	case EventDoubleSpend:
		if e.DoubleSpend == nil || e.ReorgedCoinbase != nil {
			return Malformed(e.Position, "%s event without matching details", e.Kind)
		}
		if len(e.DoubleSpend.DoubleSpentOutpoints) == 0 {
			return Malformed(e.Position, "doubleSpentOutpoints is empty")
		}
	case EventSpendingReorgedCoinbase:
		if e.ReorgedCoinbase == nil || e.DoubleSpend != nil {
			return Malformed(e.Position, "%s event without matching details", e.Kind)
		}
	case "":
		return Malformed(e.Position, "missing event discriminator")
	default:
		return Malformed(e.Position, "unknown event %q", e.Kind)
	}
	return nil
}

// ID identifies an event independently of its feed position.
// It returns an empty string for events that do not pass Validate.
func (e Event) ID() string {
	if e.Validate() != nil {
		return ""
	}
	switch e.Kind {
	case EventDoubleSpend:
		d := e.DoubleSpend
		first := d.DoubleSpentOutpoints[0].AlsoSpentIn
		return strings.Join([]string{
			string(e.Kind), d.MainChainBlock.Hash, d.MainChainTx.TxID, first.Block.Hash, first.Tx.TxID,
		}, ":")
	default:
		d := e.ReorgedCoinbase
		return strings.Join([]string{string(e.Kind), d.OrphanedBlock.Hash, d.OrphanedTx.TxID}, ":")
	}
}

// Failure reports a record that could not be decoded or summarized.
type Failure struct {
	Position int
	Err      error
}
