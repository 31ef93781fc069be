package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// SQLite database location
	DBPath string `mapstructure:"db_path"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogLevel string `mapstructure:"log_level"`

	// Loops.so email-marketing integration
	Loops LoopsConfig `mapstructure:"loops"`

	ConfigPath string
}

// LoopsConfig configures the Loops.so sync client. A disabled integration or
// missing API key is a silent no-op, never a startup failure.
type LoopsConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Enabled        bool   `mapstructure:"enabled"`
	DefaultSource  string `mapstructure:"default_source"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

const (
	DefaultConfigPath   = "config.yml"
	DefaultAPIHost      = "0.0.0.0"
	DefaultAPIPort      = 8330
	DefaultDBPath       = "crm.sqlite3"
	DefaultLogLevel     = "info"
	DefaultLoopsBaseURL = "https://app.loops.so/api/v1"
	DefaultLoopsSource  = "CRM API"
	DefaultLoopsTimeout = 30
)

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("api_host", DefaultAPIHost)
	viper.SetDefault("api_port", DefaultAPIPort)
	viper.SetDefault("db_path", DefaultDBPath)
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("loops.enabled", false)
	viper.SetDefault("loops.api_key", "")
	viper.SetDefault("loops.base_url", DefaultLoopsBaseURL)
	viper.SetDefault("loops.default_source", DefaultLoopsSource)
	viper.SetDefault("loops.timeout_seconds", DefaultLoopsTimeout)

	// Allow environment variable overrides. Nested keys map through the
	// replacer, e.g. loops.api_key -> CRM_LOOPS_API_KEY.
	viper.SetEnvPrefix("CRM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine: everything has a default and the Loops
	// integration no-ops when unconfigured.
	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigPath = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.APIPort < 1 || c.APIPort > 65535 {
		return fmt.Errorf("api_port must be between 1 and 65535")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.Loops.TimeoutSeconds < 1 {
		return fmt.Errorf("loops.timeout_seconds must be at least 1")
	}
	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("CRM_DEV_MODE") == "1"
}
