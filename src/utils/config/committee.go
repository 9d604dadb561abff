package config

import (
	"github.com/spf13/viper"
)

const (
	CommitteeKindStatic   = "static"
	CommitteeKindContract = "contract"
)

type Committee struct {
	// One of: static, contract
	Kind string

	// Member addresses, used with the static kind
	Members []string
}

func setCommitteeDefaults() {
	viper.SetDefault("Committee.Kind", CommitteeKindContract)
	viper.SetDefault("Committee.Members", []string{})
}
