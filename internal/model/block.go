// Package model defines the event feed records and the view-models derived from them.
package model

// Block references a block by hash and height.
type Block struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}
