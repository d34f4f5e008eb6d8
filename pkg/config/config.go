package config

// Package config provides a reusable loader for GPPN/Veritas node
// configuration files and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.1.0

import (
	"fmt"

	"github.com/spf13/viper"

	"gppn-network/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config represents the unified configuration for a GPPN/Veritas node. It
// mirrors the structure of the YAML files under cmd/config.
type Config struct {
	Network struct {
		Namespace      string   `mapstructure:"namespace" json:"namespace"`
		ListenAddr     string   `mapstructure:"listen_addr" json:"listen_addr"`
		BootstrapPeers []string `mapstructure:"bootstrap_peers" json:"bootstrap_peers"`
		DiscoveryTag   string   `mapstructure:"discovery_tag" json:"discovery_tag"`
		EnableDHT      bool     `mapstructure:"enable_dht" json:"enable_dht"`
	} `mapstructure:"network" json:"network"`

	Routing struct {
		MaxHops           int     `mapstructure:"max_hops" json:"max_hops"`
		K                 int     `mapstructure:"k" json:"k"`
		MinTrustThreshold float64 `mapstructure:"min_trust_threshold" json:"min_trust_threshold"`
	} `mapstructure:"routing" json:"routing"`

	Crypto struct {
		KeyFile string `mapstructure:"key_file" json:"key_file"`
	} `mapstructure:"crypto" json:"crypto"`

	AdminAPI struct {
		BindAddr string `mapstructure:"bind_addr" json:"bind_addr"`
		Enabled  bool   `mapstructure:"enabled" json:"enabled"`
	} `mapstructure:"admin_api" json:"admin_api"`

	Storage struct {
		DBPath string `mapstructure:"db_path" json:"db_path"`
	} `mapstructure:"storage" json:"storage"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // picks up overrides from process environment variables

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the GPPN_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("GPPN_ENV", ""))
}
