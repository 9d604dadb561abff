package config

import (
	"github.com/spf13/viper"
)

const (
	StoreKindMemory   = "memory"
	StoreKindPostgres = "postgres"
)

type Store struct {
	// One of: memory, postgres
	Kind string
}

func setStoreDefaults() {
	viper.SetDefault("Store.Kind", StoreKindPostgres)
}
