package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Source is a local path or http(s) URL of the leads CSV.
	Source           string `mapstructure:"source" yaml:"source"`
	Encoding         string `mapstructure:"encoding" yaml:"encoding"`
	StalledThreshold int    `mapstructure:"stalled_threshold" yaml:"stalled_threshold"`
	DemoCount        int    `mapstructure:"demo_count" yaml:"demo_count"`
	PageSize         int    `mapstructure:"page_size" yaml:"page_size"`
	CurrencySymbol   string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	HTTPTimeoutSec   int    `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".pipeview"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.pipeview/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PIPEVIEW")
	v.AutomaticEnv()

	v.SetDefault("source", "data/leads.csv")
	v.SetDefault("encoding", "utf-8")
	v.SetDefault("stalled_threshold", 7)
	v.SetDefault("demo_count", 88)
	v.SetDefault("page_size", 25)
	v.SetDefault("currency_symbol", "$")
	v.SetDefault("http_timeout_sec", 20)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.PageSize <= 0 {
		c.PageSize = 25
	}
	return &c, nil
}
