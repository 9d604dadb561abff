package config

import (
	"github.com/spf13/viper"
)

// EIP-712 domain used for hashing consume authorizations
type Domain struct {
	Name              string
	Version           string
	ChainId           int64
	VerifyingContract string
}

// Settings the registry is initialized with on an empty store
type Registry struct {
	Owner                  string
	Aggregator             string
	FeesCollector          string
	Committee              string
	AcceptedToken          string
	Oracle                 string
	ItemSlotPrice          string
	InitialThirdPartyValue bool
	InitialItemValue       bool

	Domain Domain
}

func setRegistryDefaults() {
	viper.SetDefault("Registry.Owner", "")
	viper.SetDefault("Registry.Aggregator", "")
	viper.SetDefault("Registry.FeesCollector", "")
	viper.SetDefault("Registry.Committee", "")
	viper.SetDefault("Registry.AcceptedToken", "")
	viper.SetDefault("Registry.Oracle", "")
	viper.SetDefault("Registry.ItemSlotPrice", "100000000000000000")
	viper.SetDefault("Registry.InitialThirdPartyValue", "false")
	viper.SetDefault("Registry.InitialItemValue", "false")
	viper.SetDefault("Registry.Domain.Name", "Decentraland Third Party Registry")
	viper.SetDefault("Registry.Domain.Version", "1")
	viper.SetDefault("Registry.Domain.ChainId", "137")
	viper.SetDefault("Registry.Domain.VerifyingContract", "0x0000000000000000000000000000000000000000")
}
