package alpaca

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// GetAccount fetches the account the client's credentials belong to.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.get(ctx, "/v2/account", nil, &account); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}

// GetPositions fetches all open positions.
func (c *Client) GetPositions(ctx context.Context) ([]Position, error) {
	var positions []Position
	if err := c.get(ctx, "/v2/positions", nil, &positions); err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	return positions, nil
}

// GetOrders fetches orders matching opts.
func (c *Client) GetOrders(ctx context.Context, opts GetOrdersOptions) ([]Order, error) {
	query := url.Values{}

	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if !opts.After.IsZero() {
		query.Set("after", opts.After.UTC().Format(time.RFC3339))
	}
	if !opts.Until.IsZero() {
		query.Set("until", opts.Until.UTC().Format(time.RFC3339))
	}
	if opts.Direction != "" {
		query.Set("direction", opts.Direction)
	}
	if len(opts.Symbols) > 0 {
		query.Set("symbols", strings.Join(opts.Symbols, ","))
	}

	var orders []Order
	if err := c.get(ctx, "/v2/orders", query, &orders); err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	return orders, nil
}

// GetPortfolioHistory fetches the equity time series for the account.
func (c *Client) GetPortfolioHistory(ctx context.Context, opts GetPortfolioHistoryOptions) (*PortfolioHistory, error) {
	query := url.Values{}

	if opts.Period != "" {
		query.Set("period", opts.Period)
	}
	if opts.Timeframe != "" {
		query.Set("timeframe", opts.Timeframe)
	}
	if !opts.DateEnd.IsZero() {
		query.Set("date_end", opts.DateEnd.Format("2006-01-02"))
	}
	if opts.ExtendedHours {
		query.Set("extended_hours", "true")
	}

	var history PortfolioHistory
	if err := c.get(ctx, "/v2/account/portfolio/history", query, &history); err != nil {
		return nil, fmt.Errorf("get portfolio history: %w", err)
	}
	return &history, nil
}

// Period formats a trailing window in days the way the history endpoint
// expects it, e.g. 5 -> "5D".
func Period(days int) string {
	return strconv.Itoa(days) + "D"
}
