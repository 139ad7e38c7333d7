package dashboard

import (
	"context"
	"fmt"

	"github.com/gregtusar/paper-dashboard/pkg/models"
	"github.com/gregtusar/paper-dashboard/pkg/normalize"
	"github.com/gregtusar/paper-dashboard/pkg/session"
	"github.com/sirupsen/logrus"
)

// Adapter is the read surface of one account session.
type Adapter interface {
	FetchAccount(ctx context.Context) (models.AccountSnapshot, error)
	FetchPositions(ctx context.Context) ([]models.PositionRow, error)
	FetchOrders(ctx context.Context, status string, limit int) ([]models.OrderRow, error)
	FetchPortfolioHistory(ctx context.Context, timeframe string, windowDays int) ([]models.EquityPoint, error)
}

var _ Adapter = (*session.Session)(nil)

// Query holds the upstream query parameters used by a render pass.
type Query struct {
	OrderStatus string
	OrderLimit  int
	Timeframe   string
	HistoryDays int
}

// View is everything one render pass fetched for an account.
type View struct {
	Label       string                     `json:"label"`
	Account     models.AccountSnapshot     `json:"account"`
	Balance     []models.Metric            `json:"balance"`
	Positions   Result[models.PositionRow] `json:"positions"`
	History     Result[models.EquityPoint] `json:"history"`
	Orders      Result[models.OrderRow]    `json:"orders"`
	HistoryDays int                        `json:"history_days"`
	Notices     []Notice                   `json:"notices"`
}

// AccountError means the account itself could not be read, which stops the
// whole render pass.
type AccountError struct {
	Label string
	Err   error
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("Error getting account info: %v", e.Err)
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

type Loader struct {
	query  Query
	logger *logrus.Logger
}

func NewLoader(query Query, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{query: query, logger: logger}
}

func (l *Loader) Query() Query {
	return l.query
}

// WithHistoryDays returns a loader that requests a different history window.
// Non-positive values keep the current one.
func (l *Loader) WithHistoryDays(days int) *Loader {
	if days <= 0 {
		return l
	}
	q := l.query
	q.HistoryDays = days
	return &Loader{query: q, logger: l.logger}
}

// Load runs one sequential fetch pass: account, positions, history, orders.
// Only an account failure is returned as an error; every other failure
// becomes a failed Result plus one error notice.
func (l *Loader) Load(ctx context.Context, label string, adapter Adapter) (*View, error) {
	log := l.logger.WithField("account", label)

	account, err := adapter.FetchAccount(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to fetch account")
		return nil, &AccountError{Label: label, Err: err}
	}

	view := &View{
		Label:       label,
		Account:     account,
		Balance:     normalize.Metrics(account),
		HistoryDays: l.historyDays(),
		Notices:     []Notice{},
	}

	positions, err := adapter.FetchPositions(ctx)
	view.Positions = collect(view, log, "active positions", positions, err)

	history, err := adapter.FetchPortfolioHistory(ctx, l.query.Timeframe, view.HistoryDays)
	view.History = collect(view, log, "portfolio history", history, err)

	orders, err := adapter.FetchOrders(ctx, l.query.OrderStatus, l.query.OrderLimit)
	view.Orders = collect(view, log, "order history", orders, err)

	return view, nil
}

func (l *Loader) historyDays() int {
	if l.query.HistoryDays > 0 {
		return l.query.HistoryDays
	}
	return session.DefaultHistoryDays
}

func collect[T any](view *View, log *logrus.Entry, what string, data []T, err error) Result[T] {
	if err != nil {
		msg := fmt.Sprintf("Error fetching %s: %v", what, err)
		log.WithError(err).Errorf("Failed to fetch %s", what)
		view.Notices = append(view.Notices, Notice{Level: LevelError, Message: msg})
		return Failed[T](err)
	}
	return Succeeded(data)
}
