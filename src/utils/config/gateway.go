package config

import (
	"time"

	"github.com/spf13/viper"
)

type Gateway struct {
	// REST API address
	RESTListenAddress string

	// Max time a request may take
	ServerRequestTimeout time.Duration

	// Max lifetime of a signed request
	SignatureMaxAge time.Duration

	// Allowed requests per second, per client ip
	RateLimit float64

	// Requests allowed above the rate
	RateLimitBurst int

	// Max page size of the list endpoints
	MaxPageSize int

	// Max size of a write request body in bytes
	MaxBodySize int64
}

func setGatewayDefaults() {
	viper.SetDefault("Gateway.RESTListenAddress", "0.0.0.0:4000")
	viper.SetDefault("Gateway.ServerRequestTimeout", "30s")
	viper.SetDefault("Gateway.SignatureMaxAge", "5m")
	viper.SetDefault("Gateway.RateLimit", "20")
	viper.SetDefault("Gateway.RateLimitBurst", "40")
	viper.SetDefault("Gateway.MaxPageSize", "1000")
	viper.SetDefault("Gateway.MaxBodySize", "1048576")
}
