package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for nanovc settings
// (e.g. NANOVC_INDEX_KIND=value_tree).
const envPrefix = "NANOVC"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Load builds a RepoHandlerConfig from environment variables and defaults.
// nanovc has no on-disk config file format; hosts that want file-based
// configuration load their own file into a viper.Viper and pass it to
// LoadFrom instead.
func Load() (*RepoHandlerConfig, error) {
	viperCfg := viper.New()
	applyDefaults(viperCfg)
	bindEnv(viperCfg)

	return unmarshalAndValidate(viperCfg)
}

// LoadFrom builds a RepoHandlerConfig from an already-populated viper.Viper,
// after applying nanovc's defaults for any key the host didn't set. This is
// the extension point for hosts that do read a config file of their own.
func LoadFrom(viperCfg *viper.Viper) (*RepoHandlerConfig, error) {
	applyDefaults(viperCfg)
	bindEnv(viperCfg)

	return unmarshalAndValidate(viperCfg)
}

func bindEnv(viperCfg *viper.Viper) {
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()
}

func unmarshalAndValidate(viperCfg *viper.Viper) (*RepoHandlerConfig, error) {
	var cfg RepoHandlerConfig

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("index.kind", string(DefaultIndexKind))
	viperCfg.SetDefault("index.compression_threshold_bytes", DefaultCompressionSize)
	viperCfg.SetDefault("index.lru_max_bytes", 0)

	viperCfg.SetDefault("area.default_ordering", string(DefaultAreaOrdering))

	viperCfg.SetDefault("observability.log_level", "info")
	viperCfg.SetDefault("observability.log_json", false)
	viperCfg.SetDefault("observability.prometheus_enabled", false)
}
