package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Fixtures struct {
		// Source selects where the startup data comes from:
		// "embed" (compiled-in defaults), "dir", or "http".
		Source  string
		Dir     string
		URL     string
		Timeout time.Duration
	}
	SessionLifetime time.Duration
	Production      bool
}

// Load reads config from environment (EVENTDESK_ prefix) and an optional
// eventdesk.yaml. Every key has a default; the server runs out of the box
// on the embedded fixtures.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EVENTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("eventdesk")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("fixtures.source", "embed")
	v.SetDefault("fixtures.dir", "fixtures")
	v.SetDefault("fixtures.timeout", "10s")
	v.SetDefault("session.lifetime", "720h")
	v.SetDefault("production", false)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.Fixtures.Source = v.GetString("fixtures.source")
	cfg.Fixtures.Dir = v.GetString("fixtures.dir")
	cfg.Fixtures.URL = v.GetString("fixtures.url")
	cfg.Production = v.GetBool("production")

	timeout, err := time.ParseDuration(v.GetString("fixtures.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENTDESK_FIXTURES_TIMEOUT: %w", err)
	}
	cfg.Fixtures.Timeout = timeout

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENTDESK_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	switch cfg.Fixtures.Source {
	case "embed", "dir":
	case "http":
		if cfg.Fixtures.URL == "" {
			return nil, fmt.Errorf("EVENTDESK_FIXTURES_URL is required when fixtures.source is http")
		}
	default:
		return nil, fmt.Errorf("EVENTDESK_FIXTURES_SOURCE must be one of embed, dir, http")
	}

	return cfg, nil
}
