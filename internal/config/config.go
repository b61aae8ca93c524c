package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the intake service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	LogLevel         string
	DataDir          string
	FirebaseDBURL    string
	FirebaseDBSecret string
	RelayTimeout     time.Duration
	NATSURL          string
	NATSSubject      string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// RelayEnabled reports whether submissions are forwarded to the remote document store.
func (c Config) RelayEnabled() bool {
	return c.FirebaseDBURL != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Assessment Intake")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("data_dir", "data")
	v.SetDefault("relay.timeout", "10s")
	v.SetDefault("nats.subject", "assessments.received")

	timeoutString := strings.TrimSpace(v.GetString("relay.timeout"))
	if timeoutString == "" {
		timeoutString = "10s"
	}

	timeout, err := time.ParseDuration(timeoutString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid relay timeout: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("relay timeout must be positive, got %s", timeout)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		LogLevel:         strings.ToLower(v.GetString("log.level")),
		DataDir:          v.GetString("data_dir"),
		FirebaseDBURL:    strings.TrimSpace(v.GetString("firebase.db_url")),
		FirebaseDBSecret: strings.TrimSpace(v.GetString("firebase.db_secret")),
		RelayTimeout:     timeout,
		NATSURL:          strings.TrimSpace(v.GetString("nats.url")),
		NATSSubject:      v.GetString("nats.subject"),
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	if cfg.FirebaseDBURL != "" {
		parsed, err := url.Parse(cfg.FirebaseDBURL)
		if err != nil {
			return Config{}, fmt.Errorf("invalid firebase db url: %w", err)
		}
		if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return Config{}, fmt.Errorf("firebase db url must be an absolute http(s) url")
		}
	}

	return cfg, nil
}
