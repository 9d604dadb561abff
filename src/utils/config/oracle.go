package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	OracleKindChainlink = "chainlink"
	OracleKindHttp      = "http"
	OracleKindFixed     = "fixed"
)

type Oracle struct {
	// One of: chainlink, http, fixed
	Kind string

	// Maximum age of the feed's answer
	StaleTolerance time.Duration

	// Maximum time of a single rate query done by the registry
	CallTimeout time.Duration

	// Decimals of the feed's answer. -1 means the feed is asked for it.
	Decimals int

	// Url of the JSON feed, used with the http kind
	HttpUrl string

	// Request timeout of the JSON feed
	HttpTimeout time.Duration

	// Rate with 18 decimals, used with the fixed kind
	FixedRate string
}

func setOracleDefaults() {
	viper.SetDefault("Oracle.Kind", OracleKindChainlink)
	viper.SetDefault("Oracle.StaleTolerance", "24h")
	viper.SetDefault("Oracle.CallTimeout", "10s")
	viper.SetDefault("Oracle.Decimals", "-1")
	viper.SetDefault("Oracle.HttpUrl", "")
	viper.SetDefault("Oracle.HttpTimeout", "5s")
	viper.SetDefault("Oracle.FixedRate", "1000000000000000000")
}
