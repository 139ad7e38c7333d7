package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/gregtusar/paper-dashboard/pkg/alpaca"
	"github.com/gregtusar/paper-dashboard/pkg/secrets"
	"github.com/gregtusar/paper-dashboard/pkg/session"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Alpaca   AlpacaConfig   `mapstructure:"alpaca"`
	Accounts AccountsConfig `mapstructure:"accounts"`
	History  HistoryConfig  `mapstructure:"history"`
	Orders   OrdersConfig   `mapstructure:"orders"`
	Display  DisplayConfig  `mapstructure:"display"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	GCP      GCPConfig      `mapstructure:"gcp"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
	// AuthSecret enables bearer-token auth on the API when non-empty.
	AuthSecret string        `mapstructure:"auth_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type AlpacaConfig struct {
	Paper     bool          `mapstructure:"paper"`
	PaperURL  string        `mapstructure:"paper_url"`
	LiveURL   string        `mapstructure:"live_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit int           `mapstructure:"rate_limit"`
}

type AccountsConfig struct {
	Labels []string `mapstructure:"labels"`

	// Credentials is resolved after unmarshalling, one entry per label.
	Credentials []session.Credentials `mapstructure:"-"`
}

type HistoryConfig struct {
	Timeframe  string `mapstructure:"timeframe"`
	PeriodDays int    `mapstructure:"period_days"`
}

type OrdersConfig struct {
	Status string `mapstructure:"status"`
	Limit  int    `mapstructure:"limit"`
}

type DisplayConfig struct {
	// Timezone for history timestamps: "Local", "UTC" or an IANA name.
	Timezone string `mapstructure:"timezone"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type GCPConfig struct {
	ProjectID       string              `mapstructure:"project_id"`
	UseSecrets      bool                `mapstructure:"use_secrets"`
	CredentialsFile string              `mapstructure:"credentials_file"`
	SecretNames     secrets.SecretNames `mapstructure:"secret_names"`
}

// DefaultLabels are the accounts the dashboard ships with.
var DefaultLabels = []string{"H1", "H2", "H3", "R1", "R2", "R3"}

// SecretSource fills in credentials that the environment did not provide.
type SecretSource interface {
	GetSecretWithDefault(ctx context.Context, secretName, defaultValue string) string
}

// Load reads .env, the optional config file and DASH_* environment
// variables, then resolves per-account credentials.
func Load(configPath string, logger *logrus.Logger) (*Config, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/paper-dashboard")
	}

	v.SetEnvPrefix("DASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	var source SecretSource
	if config.GCP.UseSecrets && config.GCP.ProjectID != "" {
		ctx := context.Background()
		sm, err := secrets.NewGCPSecretManager(ctx, config.GCP.ProjectID, config.GCP.CredentialsFile, logger)
		if err != nil {
			return nil, fmt.Errorf("error loading secrets from GCP: %w", err)
		}
		defer sm.Close()
		source = sm
	}

	ResolveCredentials(context.Background(), &config, os.LookupEnv, source)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.auth_secret", "")
	v.SetDefault("server.token_ttl", "24h")

	v.SetDefault("alpaca.paper", true)
	v.SetDefault("alpaca.paper_url", alpaca.PaperURL)
	v.SetDefault("alpaca.live_url", alpaca.LiveURL)
	v.SetDefault("alpaca.timeout", "30s")
	v.SetDefault("alpaca.rate_limit", alpaca.DefaultRequestsPerMinute)

	v.SetDefault("accounts.labels", DefaultLabels)

	v.SetDefault("history.timeframe", session.DefaultTimeframe)
	v.SetDefault("history.period_days", session.DefaultHistoryDays)

	v.SetDefault("orders.status", session.DefaultOrderStatus)
	v.SetDefault("orders.limit", session.DefaultOrderLimit)

	v.SetDefault("display.timezone", "Local")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	v.SetDefault("gcp.use_secrets", false)
	v.SetDefault("gcp.project_id", "")
	v.SetDefault("gcp.credentials_file", "")

	secretNames := secrets.DefaultSecretNames()
	v.SetDefault("gcp.secret_names.api_key", secretNames.APIKey)
	v.SetDefault("gcp.secret_names.api_secret", secretNames.APISecret)
}

// ResolveCredentials reads <LABEL>_API_KEY and <LABEL>_API_SECRET for every
// configured label. Values the environment lacks are looked up in source
// when one is given. Whatever is still missing stays empty; the session
// layer rejects it.
func ResolveCredentials(ctx context.Context, config *Config, lookup func(string) (string, bool), source SecretSource) {
	config.Accounts.Credentials = make([]session.Credentials, 0, len(config.Accounts.Labels))

	for _, label := range config.Accounts.Labels {
		label = strings.ToUpper(strings.TrimSpace(label))
		if label == "" {
			continue
		}

		creds := session.Credentials{Label: label}
		creds.APIKey, _ = lookup(label + "_API_KEY")
		creds.APISecret, _ = lookup(label + "_API_SECRET")

		if source != nil {
			keyName, secretName := config.GCP.SecretNames.For(label)
			if creds.APIKey == "" {
				creds.APIKey = source.GetSecretWithDefault(ctx, keyName, "")
			}
			if creds.APISecret == "" {
				creds.APISecret = source.GetSecretWithDefault(ctx, secretName, "")
			}
		}

		config.Accounts.Credentials = append(config.Accounts.Credentials, creds)
	}
}

// BaseURL returns the endpoint for the configured trading mode.
func (c *Config) BaseURL() string {
	if c.Alpaca.Paper {
		return c.Alpaca.PaperURL
	}
	return c.Alpaca.LiveURL
}

// Location resolves display.timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Display.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(c.Display.Timezone)
		if err != nil {
			return nil, fmt.Errorf("display.timezone: %w", err)
		}
		return loc, nil
	}
}

// SessionOptions builds the per-account session settings.
func (c *Config) SessionOptions(logger *logrus.Logger) (session.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		Paper:             c.Alpaca.Paper,
		BaseURL:           c.BaseURL(),
		Timeout:           c.Alpaca.Timeout,
		RequestsPerMinute: c.Alpaca.RateLimit,
		Location:          loc,
		Logger:            logger,
	}, nil
}
