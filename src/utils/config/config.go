package config

import (
	"bytes"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "REGISTRY_"

// Config stores global configuration
type Config struct {
	// Is development mode on
	IsDevelopment bool

	// REST API address. API used for monitoring etc.
	RESTListenAddress string

	// Maximum time the registry will be closing before stop is forced.
	StopTimeout time.Duration

	// Logging level
	LogLevel string

	Registry  Registry
	Oracle    Oracle
	Eth       Eth
	Token     Token
	Committee Committee
	Store     Store
	Database  Database
	Redis     Redis
	Gateway   Gateway
	Profiler  Profiler
}

func setDefaults() {
	viper.SetDefault("IsDevelopment", "false")
	viper.SetDefault("RESTListenAddress", ":7777")
	viper.SetDefault("LogLevel", "DEBUG")
	viper.SetDefault("StopTimeout", "30s")

	setRegistryDefaults()
	setOracleDefaults()
	setEthDefaults()
	setTokenDefaults()
	setCommitteeDefaults()
	setStoreDefaults()
	setDatabaseDefaults()
	setRedisDefaults()
	setGatewayDefaults()
	setProfilerDefaults()
}

func Default() (config *Config) {
	config, _ = Load("")
	return
}

// Visits every field and registers upper snake case ENV name for it
func BindEnv(path []string, val reflect.Value) {
	if val.Kind() != reflect.Struct {
		key := strings.Join(path, ".")
		env := ENV_PREFIX + strcase.ToScreamingSnake(strings.Join(path, "_"))
		err := viper.BindEnv(key, env)
		if err != nil {
			panic(err)
		}
		return
	}

	// Iterates over struct fields
	for i := 0; i < val.NumField(); i++ {
		newPath := make([]string, len(path))
		copy(newPath, path)
		newPath = append(newPath, val.Type().Field(i).Name)
		BindEnv(newPath, val.Field(i))
	}
}

// Load configuration from file and env
func Load(filename string) (config *Config, err error) {
	viper.SetConfigType("json")

	setDefaults()

	BindEnv([]string{}, reflect.ValueOf(Config{}))

	// Empty filename means we use default values
	if filename != "" {
		var content []byte
		/* #nosec */
		content, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}

		err = viper.ReadConfig(bytes.NewBuffer(content))
		if err != nil {
			return nil, err
		}
	}

	config = new(Config)
	err = viper.Unmarshal(&config, func(c *mapstructure.DecoderConfig) {
		c.WeaklyTypedInput = true
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return nil, err
	}

	return
}
