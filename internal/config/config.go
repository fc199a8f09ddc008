// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is the runtime configuration shared by every command.
type Config struct {
	ResendAPIKey string        `env:"RESEND_API_KEY"`
	From         string        `env:"CONTACT_FROM" envDefault:"Portfolio Contact <onboarding@resend.dev>"`
	To           []string      `env:"CONTACT_TO" envDefault:"hello@example.com" envSeparator:","`
	SendTimeout  time.Duration `env:"CONTACT_SEND_TIMEOUT" envDefault:"30s"`
	HTTPAddr     string        `env:"CONTACT_HTTP_ADDR" envDefault:":8080"`
	SessionTTL   time.Duration `env:"CONTACT_SESSION_TTL" envDefault:"30m"`
	LogLevel     string        `env:"CONTACT_LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"CONTACT_LOG_FORMAT" envDefault:"json"`
	Locale       string        `env:"CONTACT_LOCALE" envDefault:"en"`
	ThemeVariant string        `env:"CONTACT_THEME_VARIANT"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.SendTimeout <= 0 {
		errs = append(errs, fmt.Errorf("CONTACT_SEND_TIMEOUT must be positive, got %s", c.SendTimeout))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("CONTACT_SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.SendingEnabled() && len(c.Recipients()) == 0 {
		errs = append(errs, errors.New("CONTACT_TO is required when RESEND_API_KEY is set"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("CONTACT_LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SendingEnabled reports whether a provider credential is present.
func (c Config) SendingEnabled() bool {
	return strings.TrimSpace(c.ResendAPIKey) != ""
}

// Recipients returns the non-blank recipient addresses.
func (c Config) Recipients() []string {
	out := make([]string, 0, len(c.To))
	for _, to := range c.To {
		if to = strings.TrimSpace(to); to != "" {
			out = append(out, to)
		}
	}
	return out
}
