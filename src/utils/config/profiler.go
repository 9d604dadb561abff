package config

import (
	"github.com/spf13/viper"
)

type Profiler struct {
	// Are pprof endpoints registered on the monitoring server
	Enabled bool

	// Passed to runtime.SetBlockProfileRate when enabled
	BlockProfileRate int
}

func setProfilerDefaults() {
	viper.SetDefault("Profiler.Enabled", "false")
	viper.SetDefault("Profiler.BlockProfileRate", "50")
}
