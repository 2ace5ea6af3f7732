package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the previewctl configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	LogLevel              string        `mapstructure:"log_level"`
	PreviewURL            string        `mapstructure:"preview_url"`
	OwnerID               string        `mapstructure:"owner_id"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	ProbeIntervalSeconds  int64         `mapstructure:"probe_interval_seconds"`
	ProbeInterval         time.Duration `mapstructure:"-"`
	MetricsAddr           string        `mapstructure:"metrics_addr"`
}

// Load reads configuration from environment variables and configs/.env.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "previewctl")
	v.SetDefault("log_level", "info")
	v.SetDefault("preview_url", "http://127.0.0.1:10000")
	v.SetDefault("owner_id", "")
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("probe_interval_seconds", 15)
	v.SetDefault("metrics_addr", ":9810")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.PreviewURL = strings.TrimRight(strings.TrimSpace(cfg.PreviewURL), "/")
	u, err := url.Parse(cfg.PreviewURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid preview_url %q (want scheme://host[:port])", cfg.PreviewURL)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.ProbeIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid probe_interval_seconds (must be positive seconds)")
	}
	cfg.ProbeInterval = time.Duration(cfg.ProbeIntervalSeconds) * time.Second

	return &cfg, nil
}
