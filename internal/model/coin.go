package model

type Coin string
type Network string

var (
	VTC Coin = "VTC"
	BTC Coin = "BTC"
	LTC Coin = "LTC"
)

var (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)
