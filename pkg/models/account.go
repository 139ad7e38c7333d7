package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AccountSnapshot is a point-in-time read of an account's balances.
type AccountSnapshot struct {
	ID          string          `json:"id"`
	Equity      decimal.Decimal `json:"equity"`
	LastEquity  decimal.Decimal `json:"last_equity"`
	BuyingPower decimal.Decimal `json:"buying_power"`
	Cash        decimal.Decimal `json:"cash"`
}

// Balance metric labels, in display order.
const (
	MetricAccountID   = "Account ID"
	MetricEquity      = "Equity"
	MetricLastEquity  = "Last Equity"
	MetricBuyingPower = "Buying Power"
	MetricCash        = "Cash"
)

// Metric is one labelled line of the account overview. Monetary metrics
// carry Amount; the account ID carries Text.
type Metric struct {
	Label    string          `json:"label"`
	Text     string          `json:"text,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Monetary bool            `json:"monetary"`
}

// Value returns the metric as the original pair value: the ID string or the
// decimal amount.
func (m Metric) Value() any {
	if m.Monetary {
		return m.Amount
	}
	return m.Text
}

// MarshalJSON emits amount for monetary metrics and text for the rest.
func (m Metric) MarshalJSON() ([]byte, error) {
	out := struct {
		Label    string           `json:"label"`
		Text     string           `json:"text,omitempty"`
		Amount   *decimal.Decimal `json:"amount,omitempty"`
		Monetary bool             `json:"monetary"`
	}{Label: m.Label, Monetary: m.Monetary}
	if m.Monetary {
		out.Amount = &m.Amount
	} else {
		out.Text = m.Text
	}
	return json.Marshal(out)
}
