package models

import (
	"github.com/shopspring/decimal"
)

// PositionRow is one open position. ChangePercent is unrealized_plpc
// expressed in percent.
type PositionRow struct {
	Symbol        string          `json:"symbol"`
	Qty           decimal.Decimal `json:"qty"`
	MarketValue   decimal.Decimal `json:"market_value"`
	CostBasis     decimal.Decimal `json:"cost_basis"`
	UnrealizedPL  decimal.Decimal `json:"unrealized_pl"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}
