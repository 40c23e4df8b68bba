package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port int `mapstructure:"port"`

	APIURL     string        `mapstructure:"api_url"`
	APITimeout time.Duration `mapstructure:"api_timeout"`

	// Sessions are kept in memory when RedisAddr is empty.
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`

	// How long the "round posted" page waits before going to the dashboard.
	PostRedirectSeconds int `mapstructure:"post_redirect_seconds"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func (c *Config) PostRedirect() time.Duration {
	return time.Duration(c.PostRedirectSeconds) * time.Second
}

// RequestTimeout bounds a whole web request. It leaves room past a backend
// call that runs into APITimeout to save the session afterwards.
func (c *Config) RequestTimeout() time.Duration {
	return c.APITimeout + 15*time.Second
}

var defaults = map[string]any{
	"port":                  3000,
	"api_url":               "http://127.0.0.1:8000",
	"api_timeout":           "30s",
	"redis_addr":            "",
	"redis_password":        "",
	"redis_db":              0,
	"session_ttl":           "24h",
	"cookie_secure":         false,
	"post_redirect_seconds": 5,
	"log_level":             "info",
	"log_format":            "console",
}

// Load reads the configuration. Values come from, in order of precedence,
// environment variables (PORT, API_URL, ...), a .env file, an optional
// config.yaml in the working directory or ./configs, and the defaults.
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	for k, d := range defaults {
		v.SetDefault(k, d)
		// Unmarshal only sees environment variables for known keys.
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing configuration: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.APIURL = strings.TrimSuffix(strings.TrimSpace(cfg.APIURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range", c.Port))
	}
	if c.APIURL == "" {
		errs = append(errs, errors.New("API_URL is required"))
	} else if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("API_URL '%s' is not an absolute url", c.APIURL))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, errors.New("API_TIMEOUT must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.PostRedirectSeconds < 0 {
		errs = append(errs, errors.New("POST_REDIRECT_SECONDS can't be negative"))
	}
	if c.RedisDB < 0 {
		errs = append(errs, errors.New("REDIS_DB can't be negative"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level '%s'", c.LogLevel))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format '%s'", c.LogFormat))
	}
	return errors.Join(errs...)
}
