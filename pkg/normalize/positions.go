package normalize

import (
	"fmt"

	"github.com/gregtusar/paper-dashboard/pkg/alpaca"
	"github.com/gregtusar/paper-dashboard/pkg/models"
)

// Positions maps raw positions to rows, one per input, in upstream order.
func Positions(raw []alpaca.Position) ([]models.PositionRow, error) {
	rows := make([]models.PositionRow, 0, len(raw))
	for i := range raw {
		row, err := position(&raw[i])
		if err != nil {
			return nil, fmt.Errorf("position %s: %w", raw[i].Symbol, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func position(p *alpaca.Position) (models.PositionRow, error) {
	row := models.PositionRow{Symbol: p.Symbol}

	var err error
	if row.Qty, err = toDecimal("qty", p.Qty); err != nil {
		return row, err
	}
	if row.MarketValue, err = toDecimal("market_value", p.MarketValue); err != nil {
		return row, err
	}
	if row.CostBasis, err = toDecimal("cost_basis", p.CostBasis); err != nil {
		return row, err
	}
	if row.UnrealizedPL, err = toDecimal("unrealized_pl", p.UnrealizedPL); err != nil {
		return row, err
	}
	plpc, err := toDecimal("unrealized_plpc", p.UnrealizedPLPC)
	if err != nil {
		return row, err
	}
	row.ChangePercent = plpc.Mul(hundred)

	return row, nil
}
