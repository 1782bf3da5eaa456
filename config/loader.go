package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/authkit"
)

// EnvPrefix is the prefix of environment variables the loader reads.
const EnvPrefix = "AUTHKIT"

// configKeys are the flattened keys of authkit.Config the loader binds to
// environment variables (AUTHKIT_JWT_SECRET, AUTHKIT_GET_TOKEN_FROM_FROM, ...).
var configKeys = []string{
	"jwt_secret",
	"cookie_secret",
	"refresh_secret",
	"prefix",
	"verify_access_token_only_in_jwt",
	"access_token_ttl",
	"refresh_token_ttl",
	"get_token_from.from",
	"get_token_from.cookie_name",
	"get_token_from.header_name",
	"get_token_from.query_name",
	"logging.level",
	"logging.format",
	"logging.output",
}

// LoaderConfig holds optional file overrides.
type LoaderConfig struct {
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit YAML config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Settings is the full loadable configuration: the plugin config plus the
// ambient logging setup.
type Settings struct {
	authkit.Config `yaml:",inline" mapstructure:",squash"`
	Logging        LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// LoggingConfig mirrors logger.Config for loading purposes.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

// Load reads configuration from the layered sources into Settings.
// Defaults and validation are applied later by authkit.New.
func Load(opts ...LoaderOption) (*Settings, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	v := viper.New()

	// 1. YAML base configuration.
	if lc.ConfigFile != "" {
		if _, err := os.Stat(lc.ConfigFile); err == nil {
			v.SetConfigFile(lc.ConfigFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", lc.ConfigFile, err)
			}
		}
	}

	// 2. Optional .env file.
	if lc.EnvFile != "" {
		if _, err := os.Stat(lc.EnvFile); err == nil {
			if err := godotenv.Load(lc.EnvFile); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", lc.EnvFile, err)
			}
		}
	}

	// 3. Environment variables win over both.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		// Explicit binds so Unmarshal sees env-only keys.
		_ = v.BindEnv(key)
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return settings, nil
}
