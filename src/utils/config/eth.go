package config

import (
	"time"

	"github.com/spf13/viper"
)

type Eth struct {
	// JSON-RPC endpoint
	RpcUrl string

	// Chain id used for signing transactions
	ChainId int64

	// Hex encoded private key of the account sending token transfers
	TransactorKey string

	// Max time of waiting for a transfer to be mined
	ReceiptTimeout time.Duration
}

func setEthDefaults() {
	viper.SetDefault("Eth.RpcUrl", "https://polygon-rpc.com")
	viper.SetDefault("Eth.ChainId", "137")
	viper.SetDefault("Eth.TransactorKey", "")
	viper.SetDefault("Eth.ReceiptTimeout", "2m")
}
