package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vocdoni/arcane-treasury/log"
)

const envPrefix = "TREASURY"

// Engine backends selectable with --engine.
const (
	engineElGamal = "elgamal"
	engineRemote  = "remote"
	engineNone    = "none"
)

// Config is the daemon configuration. Values come from command line flags,
// TREASURY_* environment variables and an optional config file, in this
// order of precedence.
type Config struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	LogLevel      string `mapstructure:"logLevel"`
	LogOutput     string `mapstructure:"logOutput"`
	Engine        string `mapstructure:"engine"`
	EngineURL     string `mapstructure:"engineURL"`
	EnginePrivKey string `mapstructure:"enginePrivKey"`
	EngineMaxBits uint   `mapstructure:"engineMaxBits"`
	Contract      string `mapstructure:"contract"`
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("treasuryd", pflag.ContinueOnError)
	flags.String("config", "", "config file (yaml, toml or json)")
	flags.String("host", "127.0.0.1", "API host, the engine endpoints are unauthenticated")
	flags.Int("port", 9090, "API port")
	flags.String("logLevel", log.LogLevelInfo, "log level (debug, info, warn, error)")
	flags.String("logOutput", "stdout", "log output (stdout, stderr or filepath)")
	flags.String("engine", engineElGamal, "encryption engine (elgamal, remote or none)")
	flags.String("engineURL", "", "URL of the remote engine API, for --engine=remote")
	flags.String("enginePrivKey", "", "hex encoded ElGamal private key, a new one is generated if empty")
	flags.Uint("engineMaxBits", 0, "bits of the largest ElGamal decryptable value, 0 for the default")
	flags.String("contract", "", "treasury contract address, enables calldata packing")
	return flags
}

// loadConfig parses args, reading the environment and the config file if
// one is given.
func loadConfig(args []string) (*Config, error) {
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("cannot bind flags: %w", err)
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
	}
	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	switch conf.Engine {
	case engineElGamal, engineNone:
	case engineRemote:
		if conf.EngineURL == "" {
			return nil, fmt.Errorf("--engineURL is required for the remote engine")
		}
	default:
		return nil, fmt.Errorf("unknown engine %q", conf.Engine)
	}
	return conf, nil
}
