package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gregtusar/paper-dashboard/pkg/alpaca"
	"github.com/gregtusar/paper-dashboard/pkg/models"
	"github.com/gregtusar/paper-dashboard/pkg/normalize"
	"github.com/sirupsen/logrus"
)

const (
	DefaultOrderStatus = alpaca.OrderQueryAll
	DefaultOrderLimit  = 100
	DefaultTimeframe   = "1Min"
	DefaultHistoryDays = 5
)

// ErrMissingCredentials is returned by New for an empty key or secret.
var ErrMissingCredentials = alpaca.ErrMissingCredentials

// Credentials is the key pair for one labelled account.
type Credentials struct {
	Label     string
	APIKey    string
	APISecret string
}

type Options struct {
	Paper   bool
	BaseURL string
	// Timeout bounds each upstream request; zero means no timeout.
	Timeout           time.Duration
	RequestsPerMinute int
	// Location is where history timestamps are rendered; nil means time.Local.
	Location *time.Location
	Logger   *logrus.Logger
}

// Session is an authenticated, read-only handle on one brokerage account.
// Each fetch issues exactly one upstream request and normalizes the answer.
type Session struct {
	label    string
	client   *alpaca.Client
	location *time.Location
	logger   *logrus.Logger
}

// New builds a session, rejecting empty credentials up front so a missing
// environment variable shows up at startup rather than as a later 401.
func New(creds Credentials, opts Options) (*Session, error) {
	auth, err := alpaca.NewKeyAuthenticator(creds.APIKey, creds.APISecret)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", creds.Label, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	clientOpts := []alpaca.ClientOption{
		alpaca.WithBaseURL(opts.BaseURL),
		alpaca.WithLimiter(alpaca.NewLimiter(opts.RequestsPerMinute)),
		alpaca.WithLogger(logger),
		alpaca.WithTimeout(opts.Timeout),
	}

	return &Session{
		label:    creds.Label,
		client:   alpaca.NewClient(auth, opts.Paper, clientOpts...),
		location: opts.Location,
		logger:   logger,
	}, nil
}

func (s *Session) Label() string {
	return s.label
}

func (s *Session) FetchAccount(ctx context.Context) (models.AccountSnapshot, error) {
	raw, err := s.client.GetAccount(ctx)
	if err != nil {
		return models.AccountSnapshot{}, err
	}
	snap, err := normalize.Account(raw)
	if err != nil {
		return models.AccountSnapshot{}, fmt.Errorf("normalize account: %w", err)
	}
	return snap, nil
}

func (s *Session) FetchPositions(ctx context.Context) ([]models.PositionRow, error) {
	raw, err := s.client.GetPositions(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := normalize.Positions(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize positions: %w", err)
	}
	return rows, nil
}

// FetchOrders lists orders with the given status filter and limit and no
// time bounds. Empty values fall back to all/100.
func (s *Session) FetchOrders(ctx context.Context, status string, limit int) ([]models.OrderRow, error) {
	if status == "" {
		status = DefaultOrderStatus
	}
	if limit <= 0 {
		limit = DefaultOrderLimit
	}

	raw, err := s.client.GetOrders(ctx, alpaca.GetOrdersOptions{Status: status, Limit: limit})
	if err != nil {
		return nil, err
	}
	rows, err := normalize.Orders(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize orders: %w", err)
	}
	return rows, nil
}

// FetchPortfolioHistory returns the trailing windowDays of equity at the
// given bar resolution. Empty values fall back to 1Min/5 days.
func (s *Session) FetchPortfolioHistory(ctx context.Context, timeframe string, windowDays int) ([]models.EquityPoint, error) {
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}
	if windowDays <= 0 {
		windowDays = DefaultHistoryDays
	}

	raw, err := s.client.GetPortfolioHistory(ctx, alpaca.GetPortfolioHistoryOptions{
		Period:    alpaca.Period(windowDays),
		Timeframe: timeframe,
	})
	if err != nil {
		return nil, err
	}
	points, err := normalize.History(raw, s.location)
	if err != nil {
		return nil, fmt.Errorf("normalize portfolio history: %w", err)
	}
	return points, nil
}
