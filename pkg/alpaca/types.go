package alpaca

import (
	"bytes"
	"fmt"
	"time"
)

// Number is a numeric value as it appears on the wire. Alpaca encodes most
// amounts as JSON strings ("1000.50") but a few endpoints and older
// accounts send bare numbers, so both are accepted and kept verbatim.
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		*n = Number(bytes.TrimSpace(data[1 : len(data)-1]))
		return nil
	}
	if len(data) == 0 || !isNumericLiteral(data) {
		return fmt.Errorf("alpaca: invalid number %q", data)
	}
	*n = Number(data)
	return nil
}

func (n Number) String() string {
	return string(n)
}

// IsZero reports whether the value was absent or null upstream.
func (n Number) IsZero() bool {
	return n == ""
}

func isNumericLiteral(b []byte) bool {
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9':
		case c == '-', c == '+', c == '.', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

// Account from GET /v2/account
type Account struct {
	ID               string    `json:"id"`
	AccountNumber    string    `json:"account_number"`
	Status           string    `json:"status"`
	Currency         string    `json:"currency"`
	Cash             Number    `json:"cash"`
	Equity           Number    `json:"equity"`
	LastEquity       Number    `json:"last_equity"`
	BuyingPower      Number    `json:"buying_power"`
	PortfolioValue   Number    `json:"portfolio_value"`
	PatternDayTrader bool      `json:"pattern_day_trader"`
	TradingBlocked   bool      `json:"trading_blocked"`
	CreatedAt        time.Time `json:"created_at"`
}

// Position from GET /v2/positions
type Position struct {
	AssetID        string `json:"asset_id"`
	Symbol         string `json:"symbol"`
	Exchange       string `json:"exchange"`
	AssetClass     string `json:"asset_class"`
	Side           string `json:"side"`
	Qty            Number `json:"qty"`
	AvgEntryPrice  Number `json:"avg_entry_price"`
	MarketValue    Number `json:"market_value"`
	CostBasis      Number `json:"cost_basis"`
	UnrealizedPL   Number `json:"unrealized_pl"`
	UnrealizedPLPC Number `json:"unrealized_plpc"`
	CurrentPrice   Number `json:"current_price"`
	ChangeToday    Number `json:"change_today"`
}

// Order from GET /v2/orders
type Order struct {
	ID            string     `json:"id"`
	ClientOrderID string     `json:"client_order_id"`
	Symbol        string     `json:"symbol"`
	AssetClass    string     `json:"asset_class"`
	Type          string     `json:"type"`
	OrderType     string     `json:"order_type"`
	Side          string     `json:"side"`
	TimeInForce   string     `json:"time_in_force"`
	Qty           Number     `json:"qty"`
	Notional      Number     `json:"notional"`
	FilledQty     Number     `json:"filled_qty"`
	LimitPrice    Number     `json:"limit_price"`
	StopPrice     Number     `json:"stop_price"`
	Status        string     `json:"status"`
	CreatedAt     *time.Time `json:"created_at"`
	SubmittedAt   *time.Time `json:"submitted_at"`
	FilledAt      *time.Time `json:"filled_at"`
	CanceledAt    *time.Time `json:"canceled_at"`
}

// PortfolioHistory from GET /v2/account/portfolio/history.
// Timestamp and Equity are parallel arrays; Equity entries may be null for
// intervals without data.
type PortfolioHistory struct {
	Timestamp     []int64  `json:"timestamp"`
	Equity        []Number `json:"equity"`
	ProfitLoss    []Number `json:"profit_loss"`
	ProfitLossPct []Number `json:"profit_loss_pct"`
	BaseValue     Number   `json:"base_value"`
	Timeframe     string   `json:"timeframe"`
}

// Order status filters accepted by GET /v2/orders.
const (
	OrderQueryOpen   = "open"
	OrderQueryClosed = "closed"
	OrderQueryAll    = "all"
)

// GetOrdersOptions configures a GetOrders request. Zero values are omitted.
type GetOrdersOptions struct {
	Status    string
	Limit     int
	After     time.Time
	Until     time.Time
	Direction string
	Symbols   []string
}

// GetPortfolioHistoryOptions configures a GetPortfolioHistory request.
type GetPortfolioHistoryOptions struct {
	Period        string
	Timeframe     string
	DateEnd       time.Time
	ExtendedHours bool
}
