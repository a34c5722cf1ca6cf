package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load functions.
const EnvPrefix = "ENSSCOPE"

// Common holds settings shared by every command.
type Common struct {
	RPCURL       string
	MaxRetries   int
	RetryBackoff time.Duration
	Timeout      time.Duration
	LogLevel     string
}

var commonDefaults = map[string]interface{}{
	"max-retries":   3,
	"retry-backoff": 500 * time.Millisecond,
	"timeout":       30 * time.Second,
	"log-level":     "info",
}

// newViper merges config file, environment variables, and flags.
func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range commonDefaults {
		v.SetDefault(key, value)
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func loadCommon(v *viper.Viper) Common {
	return Common{
		RPCURL:       v.GetString("rpc"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		Timeout:      v.GetDuration("timeout"),
		LogLevel:     v.GetString("log-level"),
	}
}

// HistoryConfig holds configuration for the history command.
type HistoryConfig struct {
	Common
	SubgraphURL string
	Network     string
	Detail      bool
	Out         string
	PGDSN       string
}

// LoadHistory loads HistoryConfig.
func LoadHistory(cfgFile string, flags *pflag.FlagSet) (HistoryConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"network": "88",
		"detail":  false,
	})
	if err != nil {
		return HistoryConfig{}, err
	}

	return HistoryConfig{
		Common:      loadCommon(v),
		SubgraphURL: v.GetString("subgraph"),
		Network:     v.GetString("network"),
		Detail:      v.GetBool("detail"),
		Out:         v.GetString("out"),
		PGDSN:       v.GetString("pg-dsn"),
	}, nil
}

// TxConfig holds configuration for the tx command.
type TxConfig struct {
	Common
	// Index selects a single setText call; negative means all.
	Index int
}

// LoadTx loads TxConfig.
func LoadTx(cfgFile string, flags *pflag.FlagSet) (TxConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"index": -1,
	})
	if err != nil {
		return TxConfig{}, err
	}

	return TxConfig{
		Common: loadCommon(v),
		Index:  v.GetInt("index"),
	}, nil
}

// ContractsConfig holds configuration for the contracts command.
type ContractsConfig struct {
	Common
	Network string
}

// LoadContracts loads ContractsConfig.
func LoadContracts(cfgFile string, flags *pflag.FlagSet) (ContractsConfig, error) {
	v, err := newViper(cfgFile, flags, nil)
	if err != nil {
		return ContractsConfig{}, err
	}

	return ContractsConfig{
		Common:  loadCommon(v),
		Network: v.GetString("network"),
	}, nil
}

// StoredConfig holds configuration for the stored command.
type StoredConfig struct {
	Common
	PGDSN string
}

// LoadStored loads StoredConfig.
func LoadStored(cfgFile string, flags *pflag.FlagSet) (StoredConfig, error) {
	v, err := newViper(cfgFile, flags, nil)
	if err != nil {
		return StoredConfig{}, err
	}

	return StoredConfig{
		Common: loadCommon(v),
		PGDSN:  v.GetString("pg-dsn"),
	}, nil
}
