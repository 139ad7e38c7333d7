package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityPoint is one sample of the portfolio equity series. Equity is null
// for intervals the upstream has no value for.
type EquityPoint struct {
	Time   time.Time           `json:"time"`
	Equity decimal.NullDecimal `json:"equity"`
}
