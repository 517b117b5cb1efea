// Package outpoint builds outpoint identifiers and matches transaction inputs against them.
package outpoint

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/doublespend-viewer/internal/model"
)

const (
	// IndexWidth is the number of decimal digits of the index suffix.
	IndexWidth = 8
	// MaxIndex is the largest output index that fits the suffix.
	MaxIndex uint64 = 99_999_999
)

var (
	// ErrIndexOverflow is returned for output indices wider than IndexWidth digits.
	ErrIndexOverflow = errors.New("output index overflow")
	// ErrInvalidOutpoint is returned by Parse for identifiers without a txid or a digit suffix.
	ErrInvalidOutpoint = errors.New("invalid outpoint")
)

// ID returns txid followed by the index zero padded to IndexWidth digits.
func ID(txid string, index uint64) (string, error) {
	if index > MaxIndex {
		return "", fmt.Errorf("outpoint %s:%d: %w", txid, index, ErrIndexOverflow)
	}
	return fmt.Sprintf("%s%08d", txid, index), nil
}

// Parse splits an identifier built by ID into its txid and index.
func Parse(id string) (string, uint64, error) {
	if len(id) <= IndexWidth {
		return "", 0, fmt.Errorf("outpoint %q: %w", id, ErrInvalidOutpoint)
	}
	txid, suffix := id[:len(id)-IndexWidth], id[len(id)-IndexWidth:]
	for i := 0; i < len(suffix); i++ {
		if suffix[i] < '0' || suffix[i] > '9' {
			return "", 0, fmt.Errorf("outpoint %q: %w", id, ErrInvalidOutpoint)
		}
	}
	index, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("outpoint %q: %w", id, ErrInvalidOutpoint)
	}
	return txid, index, nil
}

// VinID returns the identifier of the output spent by in.
func VinID(in model.Vin) (string, error) {
	return ID(in.TxID, in.Vout)
}

// Set is a read-only set of outpoint identifiers.
type Set struct {
	ids map[string]struct{}
}

// NewSet builds a Set from ids. Duplicates collapse.
func NewSet(ids ...string) Set {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// Contains reports whether id is in the set.
func (s Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// IsImplicated reports whether in spent an outpoint of known.
func IsImplicated(in model.Vin, known Set) (bool, error) {
	id, err := VinID(in)
	if err != nil {
		return false, err
	}
	return known.Contains(id), nil
}
