// Package feed reads and decodes the double-spend event feed.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
	"github.com/goodnatureofminers/doublespend-viewer/internal/outpoint"
	"github.com/tidwall/gjson"
)

// ErrInvalidFeed is returned when the document is not a JSON array.
var ErrInvalidFeed = errors.New("invalid feed document")

// Option configures Decode.
type Option func(*decoder)

// WithStrictHashes rejects records whose block hashes, txids or outpoint txids are not
// 32-byte hex hashes, or whose outpoints lack the zero-padded index suffix.
func WithStrictHashes() Option {
	return func(d *decoder) {
		d.strictHashes = true
	}
}

type decoder struct {
	strictHashes bool
}

// Decode parses a feed document. Records that fail validation are returned as
// failures wrapping model.ErrMalformedEvent; the remaining records are decoded.
func Decode(data []byte, opts ...Option) ([]model.Event, []model.Failure, error) {
	d := &decoder{}
	for _, opt := range opts {
		opt(d)
	}

	if !gjson.ValidBytes(data) {
		return nil, nil, fmt.Errorf("%w: not valid json", ErrInvalidFeed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, nil, fmt.Errorf("%w: expected array, got %s", ErrInvalidFeed, root.Type)
	}

	records := root.Array()
	events := make([]model.Event, 0, len(records))
	var failures []model.Failure
	for i, rec := range records {
		ev, err := d.decodeRecord(i, rec)
		if err != nil {
			failures = append(failures, model.Failure{Position: i, Err: err})
			continue
		}
		events = append(events, ev)
	}
	return events, failures, nil
}

func (d *decoder) decodeRecord(position int, rec gjson.Result) (model.Event, error) {
	if !rec.IsObject() {
		return model.Event{}, model.Malformed(position, "record is not an object")
	}
	kind := rec.Get("event")
	if kind.Type != gjson.String || kind.Str == "" {
		return model.Event{}, model.Malformed(position, "missing event discriminator")
	}
	details := rec.Get("details")
	if !details.IsObject() {
		return model.Event{}, model.Malformed(position, "missing details")
	}

	ev := model.Event{Kind: model.EventKind(kind.Str), Position: position}
	switch ev.Kind {
	case model.EventDoubleSpend:
		if err := validateDoubleSpend(details); err != nil {
			return model.Event{}, model.Malformed(position, "%s", err)
		}
		var payload model.DoubleSpendDetails
		if err := json.Unmarshal([]byte(details.Raw), &payload); err != nil {
			return model.Event{}, model.Malformed(position, "decode details: %s", err)
		}
		ev.DoubleSpend = &payload
	case model.EventSpendingReorgedCoinbase:
		if err := validateReorgedCoinbase(details); err != nil {
			return model.Event{}, model.Malformed(position, "%s", err)
		}
		var payload model.ReorgedCoinbaseDetails
		if err := json.Unmarshal([]byte(details.Raw), &payload); err != nil {
			return model.Event{}, model.Malformed(position, "decode details: %s", err)
		}
		ev.ReorgedCoinbase = &payload
	default:
		return model.Event{}, model.Malformed(position, "unknown event %q", ev.Kind)
	}

	if d.strictHashes {
		if err := checkHashes(ev); err != nil {
			return model.Event{}, model.Malformed(position, "%s", err)
		}
	}
	return ev, nil
}

func validateDoubleSpend(details gjson.Result) error {
	if err := requireBlock(details, "mainChainBlock"); err != nil {
		return err
	}
	if err := requireTx(details, "mainChainTx"); err != nil {
		return err
	}
	dsos := details.Get("doubleSpentOutpoints")
	if !dsos.IsArray() {
		return errors.New("doubleSpentOutpoints missing")
	}
	entries := dsos.Array()
	if len(entries) == 0 {
		return errors.New("doubleSpentOutpoints is empty")
	}
	for i, dso := range entries {
		prefix := fmt.Sprintf("doubleSpentOutpoints[%d]", i)
		if !dso.IsObject() {
			return fmt.Errorf("%s is not an object", prefix)
		}
		if op := dso.Get("outpoint"); op.Type != gjson.String {
			return fmt.Errorf("%s.outpoint missing", prefix)
		}
		if err := requireBlock(dso, "alsoSpentIn.block"); err != nil {
			return fmt.Errorf("%s.%w", prefix, err)
		}
		if err := requireTx(dso, "alsoSpentIn.tx"); err != nil {
			return fmt.Errorf("%s.%w", prefix, err)
		}
	}
	return nil
}

func validateReorgedCoinbase(details gjson.Result) error {
	if err := requireBlock(details, "orphanedBlock"); err != nil {
		return err
	}
	if err := requireTx(details, "orphanedTx"); err != nil {
		return err
	}
	spent := details.Get("coinbasesSpent")
	if !spent.IsArray() {
		return errors.New("coinbasesSpent missing")
	}
	for i, op := range spent.Array() {
		if op.Type != gjson.String {
			return fmt.Errorf("coinbasesSpent[%d] is not a string", i)
		}
	}
	return nil
}

func requireBlock(obj gjson.Result, path string) error {
	block := obj.Get(path)
	if !block.IsObject() {
		return fmt.Errorf("%s missing", path)
	}
	if block.Get("hash").Type != gjson.String {
		return fmt.Errorf("%s.hash missing", path)
	}
	if block.Get("height").Type != gjson.Number {
		return fmt.Errorf("%s.height missing", path)
	}
	return nil
}

func requireTx(obj gjson.Result, path string) error {
	tx := obj.Get(path)
	if !tx.IsObject() {
		return fmt.Errorf("%s missing", path)
	}
	if tx.Get("txid").Type != gjson.String {
		return fmt.Errorf("%s.txid missing", path)
	}
	vin := tx.Get("vin")
	if !vin.IsArray() {
		return fmt.Errorf("%s.vin missing", path)
	}
	for i, in := range vin.Array() {
		if in.Get("txid").Type != gjson.String {
			return fmt.Errorf("%s.vin[%d].txid missing", path, i)
		}
		if in.Get("vout").Type != gjson.Number {
			return fmt.Errorf("%s.vin[%d].vout missing", path, i)
		}
	}
	vout := tx.Get("vout")
	if !vout.IsArray() {
		return fmt.Errorf("%s.vout missing", path)
	}
	for i, out := range vout.Array() {
		if out.Get("valueSat").Type != gjson.Number {
			return fmt.Errorf("%s.vout[%d].valueSat missing", path, i)
		}
		if to := out.Get("to"); to.Exists() && !to.IsArray() {
			return fmt.Errorf("%s.vout[%d].to is not an array", path, i)
		}
	}
	return nil
}

func checkHashes(ev model.Event) error {
	var (
		hashes    []string
		outpoints []string
	)
	addTx := func(tx model.Transaction) {
		hashes = append(hashes, tx.TxID)
		for _, in := range tx.Vin {
			hashes = append(hashes, in.TxID)
		}
	}
	if ev.DoubleSpend != nil {
		hashes = append(hashes, ev.DoubleSpend.MainChainBlock.Hash)
		addTx(ev.DoubleSpend.MainChainTx)
		for _, dso := range ev.DoubleSpend.DoubleSpentOutpoints {
			outpoints = append(outpoints, dso.Outpoint)
			hashes = append(hashes, dso.AlsoSpentIn.Block.Hash)
			addTx(dso.AlsoSpentIn.Tx)
		}
	}
	if ev.ReorgedCoinbase != nil {
		hashes = append(hashes, ev.ReorgedCoinbase.OrphanedBlock.Hash)
		addTx(ev.ReorgedCoinbase.OrphanedTx)
		outpoints = append(outpoints, ev.ReorgedCoinbase.CoinbasesSpent...)
	}
	for _, op := range outpoints {
		txid, _, err := outpoint.Parse(op)
		if err != nil {
			return err
		}
		hashes = append(hashes, txid)
	}
	for _, h := range hashes {
		if len(h) != chainhash.MaxHashStringSize {
			return fmt.Errorf("hash %q: want %d hex characters", h, chainhash.MaxHashStringSize)
		}
		if _, err := chainhash.NewHashFromStr(h); err != nil {
			return fmt.Errorf("hash %q: %w", h, err)
		}
	}
	return nil
}
