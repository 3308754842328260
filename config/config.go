// Package config loads rlec settings from a YAML file, RLEC_ environment
// variables and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/arloliu/rle/encoding"
	"github.com/arloliu/rle/internal/logging"
)

// DefaultConfigName is the config file name searched for when none is given.
const DefaultConfigName = "rlec"

type Config struct {
	LogLevel        string `mapstructure:"log_level"`
	ChunkSize       int    `mapstructure:"chunk_size"`
	MaxOutputSize   int    `mapstructure:"max_output_size"`
	SizeHintFactor  int    `mapstructure:"size_hint_factor"`
	VerifyRoundTrip bool   `mapstructure:"verify_round_trip"`
	ConfigFile      string `mapstructure:"config_file"` // Path of the config file that was read, if any
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:        "info",
		ChunkSize:       encoding.DefaultChunkSize,
		MaxOutputSize:   encoding.DefaultMaxSize,
		SizeHintFactor:  2,
		VerifyRoundTrip: false,
	}
}

// Load reads the configuration through fs.
//
// When configFile is empty, rlec.yaml is searched in the working directory,
// $HOME/.rlec and /etc/rlec; a missing file is not an error. An explicit
// configFile must exist.
func Load(fs afero.Fs, configFile string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetFs(fs)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("chunk_size", cfg.ChunkSize)
	v.SetDefault("max_output_size", cfg.MaxOutputSize)
	v.SetDefault("size_hint_factor", cfg.SizeHintFactor)
	v.SetDefault("verify_round_trip", cfg.VerifyRoundTrip)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.rlec")
		v.AddConfigPath("/etc/rlec/")
	}
	v.SetEnvPrefix("RLEC") // RLEC_CHUNK_SIZE, RLEC_LOG_LEVEL, ...
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("invalid chunk_size: %d", c.ChunkSize)
	}
	if c.MaxOutputSize <= 0 {
		return fmt.Errorf("invalid max_output_size: %d", c.MaxOutputSize)
	}
	if c.SizeHintFactor <= 0 {
		return fmt.Errorf("invalid size_hint_factor: %d", c.SizeHintFactor)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// RLEOptions converts the buffer settings into transform options.
func (c *Config) RLEOptions() []encoding.RLEOption {
	return []encoding.RLEOption{
		encoding.WithChunkSize(c.ChunkSize),
		encoding.WithMaxSize(c.MaxOutputSize),
	}
}
