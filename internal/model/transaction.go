package model

// Transaction is a transaction as carried by the event feed.
type Transaction struct {
	TxID string `json:"txid"`
	Vin  []Vin  `json:"vin"`
	Vout []Vout `json:"vout"`
}

// Vin references the previous output spent by a transaction input.
type Vin struct {
	TxID string `json:"txid"`
	Vout uint64 `json:"vout"`
}

// Vout is a transaction output. Value is in satoshis.
type Vout struct {
	ValueSat uint64   `json:"valueSat"`
	To       []string `json:"to"`
	Type     string   `json:"type,omitempty"`
}
