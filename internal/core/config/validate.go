package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is structurally usable before any
// network call is attempted.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("server.base_url", c.Server.BaseURL, isHTTPURL),
		criterio.Run("locale", c.Locale, isNonEmpty),
		criterio.Run("timezone", c.Timezone, isTimezone),
	)
}

func isHTTPURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func isNonEmpty(v string) error {
	if v == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

// isTimezone validates IANA timezone names. The timezone is forwarded to
// the server to resolve "today", so a bad name would fail remotely anyway;
// failing here gives a usable message instead.
func isTimezone(name string) error {
	if name == "" {
		return fmt.Errorf("cannot be empty")
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown timezone %q", name)
	}
	return nil
}
