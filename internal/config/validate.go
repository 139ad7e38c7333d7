package config

import (
	"errors"
	"fmt"
)

// Validate checks that values are usable. Missing credentials are not an
// error here; they are reported per account when sessions are built.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.AuthSecret != "" && c.Server.TokenTTL <= 0 {
		return errors.New("server.token_ttl must be positive when server.auth_secret is set")
	}

	if c.BaseURL() == "" {
		return errors.New("alpaca base url is empty")
	}
	if c.Alpaca.Timeout < 0 {
		return errors.New("alpaca.timeout must be >= 0")
	}

	if len(c.Accounts.Labels) == 0 {
		return errors.New("accounts.labels must list at least one account")
	}

	if c.History.PeriodDays < 1 {
		return fmt.Errorf("history.period_days must be >= 1, got %d", c.History.PeriodDays)
	}
	if c.History.Timeframe == "" {
		return errors.New("history.timeframe is required")
	}

	if c.Orders.Limit < 1 || c.Orders.Limit > 500 {
		return fmt.Errorf("orders.limit must be between 1 and 500, got %d", c.Orders.Limit)
	}
	switch c.Orders.Status {
	case "open", "closed", "all":
	default:
		return fmt.Errorf("orders.status must be open, closed or all, got %q", c.Orders.Status)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}

	return nil
}
