package config

import (
	"github.com/spf13/viper"
)

const (
	TokenKindMemory = "memory"
	TokenKindErc20  = "erc20"
)

type Token struct {
	// One of: memory, erc20
	Kind string
}

func setTokenDefaults() {
	viper.SetDefault("Token.Kind", TokenKindErc20)
}
