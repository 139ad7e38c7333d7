package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gregtusar/paper-dashboard/pkg/secrets"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSecretSource struct {
	mock.Mock
}

func (m *MockSecretSource) GetSecretWithDefault(ctx context.Context, secretName, defaultValue string) string {
	args := m.Called(ctx, secretName, defaultValue)
	return args.String(0)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("H1_API_KEY", "key1")
	t.Setenv("H1_API_SECRET", "secret1")

	cfg, err := Load(writeConfig(t, "{}\n"), nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Server.TokenTTL)
	assert.True(t, cfg.Alpaca.Paper)
	assert.Equal(t, "https://paper-api.alpaca.markets", cfg.BaseURL())
	assert.Equal(t, 30*time.Second, cfg.Alpaca.Timeout)
	assert.Equal(t, 200, cfg.Alpaca.RateLimit)
	assert.Equal(t, []string{"H1", "H2", "H3", "R1", "R2", "R3"}, cfg.Accounts.Labels)
	assert.Equal(t, "1Min", cfg.History.Timeframe)
	assert.Equal(t, 5, cfg.History.PeriodDays)
	assert.Equal(t, "all", cfg.Orders.Status)
	assert.Equal(t, 100, cfg.Orders.Limit)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "alpaca-%s-api-key", cfg.GCP.SecretNames.APIKey)

	require.Len(t, cfg.Accounts.Credentials, 6)
	assert.Equal(t, "H1", cfg.Accounts.Credentials[0].Label)
	assert.Equal(t, "key1", cfg.Accounts.Credentials[0].APIKey)
	assert.Equal(t, "secret1", cfg.Accounts.Credentials[0].APISecret)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
alpaca:
  paper: false
  timeout: 5s
accounts:
  labels: [R1, r2]
history:
  period_days: 10
display:
  timezone: UTC
logging:
  format: text
`)
	t.Setenv("DASH_ORDERS_LIMIT", "50")
	t.Setenv("R2_API_KEY", "k2")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Alpaca.Paper)
	assert.Equal(t, "https://api.alpaca.markets", cfg.BaseURL())
	assert.Equal(t, 5*time.Second, cfg.Alpaca.Timeout)
	assert.Equal(t, 10, cfg.History.PeriodDays)
	assert.Equal(t, 50, cfg.Orders.Limit)

	require.Len(t, cfg.Accounts.Credentials, 2)
	assert.Equal(t, "R2", cfg.Accounts.Credentials[1].Label)
	assert.Equal(t, "k2", cfg.Accounts.Credentials[1].APIKey)
	assert.Empty(t, cfg.Accounts.Credentials[1].APISecret)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_InvalidFile(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_ValidationFailure(t *testing.T) {
	_, err := Load(writeConfig(t, "orders:\n  status: pending\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders.status")
}

func TestResolveCredentials_SecretFallback(t *testing.T) {
	ctx := context.Background()
	cfg := &Config{
		Accounts: AccountsConfig{Labels: []string{"H1", " ", "R1"}},
		GCP:      GCPConfig{SecretNames: secrets.DefaultSecretNames()},
	}
	env := map[string]string{"H1_API_KEY": "env-key"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	source := new(MockSecretSource)
	source.On("GetSecretWithDefault", ctx, "alpaca-h1-api-secret", "").Return("gcp-secret")
	source.On("GetSecretWithDefault", ctx, "alpaca-r1-api-key", "").Return("")
	source.On("GetSecretWithDefault", ctx, "alpaca-r1-api-secret", "").Return("")

	ResolveCredentials(ctx, cfg, lookup, source)

	require.Len(t, cfg.Accounts.Credentials, 2)
	assert.Equal(t, "env-key", cfg.Accounts.Credentials[0].APIKey)
	assert.Equal(t, "gcp-secret", cfg.Accounts.Credentials[0].APISecret)
	assert.Equal(t, "R1", cfg.Accounts.Credentials[1].Label)
	assert.Empty(t, cfg.Accounts.Credentials[1].APIKey)
	source.AssertExpectations(t)
	source.AssertNotCalled(t, "GetSecretWithDefault", ctx, "alpaca-h1-api-key", "")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080, TokenTTL: time.Hour},
			Alpaca:   AlpacaConfig{Paper: true, PaperURL: "https://paper-api.alpaca.markets"},
			Accounts: AccountsConfig{Labels: []string{"H1"}},
			History:  HistoryConfig{Timeframe: "1Min", PeriodDays: 5},
			Orders:   OrdersConfig{Status: "all", Limit: 100},
			Display:  DisplayConfig{Timezone: "Local"},
			Logging:  LoggingConfig{Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"auth without ttl", func(c *Config) { c.Server.AuthSecret = "s"; c.Server.TokenTTL = 0 }, "server.token_ttl"},
		{"no base url", func(c *Config) { c.Alpaca.PaperURL = "" }, "base url"},
		{"no accounts", func(c *Config) { c.Accounts.Labels = nil }, "accounts.labels"},
		{"zero period", func(c *Config) { c.History.PeriodDays = 0 }, "history.period_days"},
		{"no timeframe", func(c *Config) { c.History.Timeframe = "" }, "history.timeframe"},
		{"limit too big", func(c *Config) { c.Orders.Limit = 501 }, "orders.limit"},
		{"bad status", func(c *Config) { c.Orders.Status = "filled" }, "orders.status"},
		{"bad timezone", func(c *Config) { c.Display.Timezone = "Mars/Olympus" }, "display.timezone"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSessionOptions(t *testing.T) {
	cfg := &Config{
		Alpaca:  AlpacaConfig{Paper: true, PaperURL: "http://paper", Timeout: time.Second, RateLimit: 60},
		Display: DisplayConfig{Timezone: "UTC"},
	}
	logger := logrus.New()

	opts, err := cfg.SessionOptions(logger)
	require.NoError(t, err)
	assert.True(t, opts.Paper)
	assert.Equal(t, "http://paper", opts.BaseURL)
	assert.Equal(t, time.Second, opts.Timeout)
	assert.Equal(t, 60, opts.RequestsPerMinute)
	assert.Equal(t, time.UTC, opts.Location)
	assert.Same(t, logger, opts.Logger)
}

func TestLoggingApply(t *testing.T) {
	logger := logrus.New()
	closeFn, err := LoggingConfig{Level: "debug", Format: "text"}.Apply(logger)
	require.NoError(t, err)
	assert.NoError(t, closeFn())
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	path := filepath.Join(t.TempDir(), "dash.log")
	closeFn, err = LoggingConfig{Level: "nonsense", Format: "json", File: path}.Apply(logger)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	logger.Info("hello")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
