// Package format renders identifiers and amounts for display.
package format

import (
	"strconv"
	"strings"
)

const ellipsis = "..."

// TrimHash shortens s to its first and last keep characters joined by an ellipsis.
// Strings that would not get shorter are returned unchanged.
func TrimHash(s string, keep int) string {
	if keep <= 0 || len(s) <= 2*keep+len(ellipsis) {
		return s
	}
	return s[:keep] + ellipsis + s[len(s)-keep:]
}

// Coins formats a coin amount with up to eight decimals and no trailing zeros.
func Coins(v float64) string {
	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
