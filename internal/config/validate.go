package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"guess-the-guild/internal/core/domain"
)

// Validation constants define acceptable bounds for configuration values
const (
	// Discord tokens are typically 50+ characters
	minTokenLength = 50

	minDelay = 500 * time.Millisecond
	maxDelay = time.Minute

	maxRoundFetchRetries = 5
	maxRoundFetchBackoff = 10 * time.Second

	minSessionIdleTimeout   = time.Minute
	minSessionSweepInterval = time.Second
)

// Validate checks if the configuration values are valid and within acceptable ranges.
// It returns all validation errors at once using errors.Join.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateStore(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateGuildAPIURL(); err != nil {
		errs = append(errs, err)
	}

	if _, err := domain.ParseDifficulty(c.DefaultDifficulty); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_DIFFICULTY is invalid: %w (hint: use easy, medium or hard)", err))
	}

	if err := validateDelay("RESULT_DELAY", c.ResultDelay); err != nil {
		errs = append(errs, err)
	}

	if err := validateDelay("RECORD_BANNER_DURATION", c.RecordBannerDuration); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateRetryPolicy(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateSessions(); err != nil {
		errs = append(errs, err)
	}

	if c.MetricsAddr == "" {
		errs = append(errs, fmt.Errorf("METRICS_ADDR cannot be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

// validateStore ensures the backend is known and postgres has a connection string
func (c *Config) validateStore() error {
	switch c.StoreBackend {
	case StoreBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=%s (hint: set STORE_BACKEND=%s for local play)",
				StoreBackendPostgres, StoreBackendMemory)
		}
	case StoreBackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q",
			StoreBackendPostgres, StoreBackendMemory, c.StoreBackend)
	}
	return nil
}

func (c *Config) validateGuildAPIURL() error {
	u, err := url.Parse(c.GuildAPIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("GUILD_API_URL must be an absolute URL, got %q", c.GuildAPIURL)
	}
	return nil
}

func validateDelay(field string, d time.Duration) error {
	if d < minDelay {
		return fmt.Errorf("%s must be at least %v, got %v", field, minDelay, d)
	}
	if d > maxDelay {
		return fmt.Errorf(
			"%s must be at most %v, got %v (hint: players wait this long between rounds)",
			field, maxDelay, d,
		)
	}
	return nil
}

func (c *Config) validateRetryPolicy() error {
	var errs []error

	if c.RoundFetchRetries < 0 || c.RoundFetchRetries > maxRoundFetchRetries {
		errs = append(errs, fmt.Errorf(
			"ROUND_FETCH_RETRIES must be between 0 and %d, got %d",
			maxRoundFetchRetries, c.RoundFetchRetries,
		))
	}

	if c.RoundFetchBackoff < 0 || c.RoundFetchBackoff > maxRoundFetchBackoff {
		errs = append(errs, fmt.Errorf(
			"ROUND_FETCH_BACKOFF must be between 0 and %v, got %v",
			maxRoundFetchBackoff, c.RoundFetchBackoff,
		))
	}

	return errors.Join(errs...)
}

func (c *Config) validateSessions() error {
	var errs []error

	if c.SessionIdleTimeout < minSessionIdleTimeout {
		errs = append(errs, fmt.Errorf(
			"SESSION_IDLE_TIMEOUT must be at least %v, got %v (hint: Discord interactions can be edited for 15m)",
			minSessionIdleTimeout, c.SessionIdleTimeout,
		))
	}

	if c.SessionSweepInterval < minSessionSweepInterval {
		errs = append(errs, fmt.Errorf(
			"SESSION_SWEEP_INTERVAL must be at least %v, got %v",
			minSessionSweepInterval, c.SessionSweepInterval,
		))
	}

	return errors.Join(errs...)
}
