// ABOUTME: Configuration loader for the NeuroStudy client
// ABOUTME: Layers defaults, config.yaml, .env, and NEUROSTUDY_* environment variables via viper

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIURL is used when nothing else sets the backend address
const DefaultAPIURL = "http://localhost:8080/api/v1"

// EnvPrefix namespaces the client's environment variables
const EnvPrefix = "NEUROSTUDY"

// AppName names the per-user config directory
const AppName = "neurostudy"

// Config holds resolved client settings
type Config struct {
	APIURL    string        `mapstructure:"api_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	ConfigDir string        `mapstructure:"config_dir"`
	Color     string        `mapstructure:"color"`
	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
}

// Options controls where Load looks
type Options struct {
	// ConfigFile is an explicit config path; a missing explicit file is an error
	ConfigFile string
	// EnvFile is a dotenv file loaded before reading the environment; missing is fine
	EnvFile string
}

// DefaultConfigDir returns the config directory following XDG
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// Load resolves configuration. Precedence: env > config file > default.
// Command-line flags are applied on top by the caller.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// BACKEND_URL is accepted as a fallback; logging reads the plain LOG_* names too
	_ = v.BindEnv("api_url", EnvPrefix+"_API_URL", "BACKEND_URL")
	_ = v.BindEnv("log_level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log_format", EnvPrefix+"_LOG_FORMAT", "LOG_FORMAT")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := v.GetString("config_dir"); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("config_dir", DefaultConfigDir())
	v.SetDefault("color", "auto")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api_url must not be empty")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("invalid api_url %q: must start with http:// or https://", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be positive", c.Timeout)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q: must be auto, always, or never", c.Color)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (must be text or json)", c.LogFormat)
	}
	return nil
}
