package normalize

import (
	"fmt"
	"time"

	"github.com/gregtusar/paper-dashboard/pkg/alpaca"
	"github.com/gregtusar/paper-dashboard/pkg/models"
)

// Orders maps raw orders to rows in upstream order. No filtering or sorting
// happens here; the query already decided which orders come back.
func Orders(raw []alpaca.Order) ([]models.OrderRow, error) {
	rows := make([]models.OrderRow, 0, len(raw))
	for i := range raw {
		row, err := order(&raw[i])
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", raw[i].ID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func order(o *alpaca.Order) (models.OrderRow, error) {
	row := models.OrderRow{
		ID:          o.ID,
		Symbol:      o.Symbol,
		Type:        models.OrderType(orderType(o)),
		Side:        models.OrderSide(o.Side),
		Status:      models.OrderStatus(o.Status),
		SubmittedAt: FormatSubmittedAt(o.SubmittedAt),
	}

	var err error
	if row.Qty, err = toNullDecimal("qty", o.Qty); err != nil {
		return row, err
	}
	if row.FilledQty, err = toDecimal("filled_qty", o.FilledQty); err != nil {
		return row, err
	}

	return row, nil
}

// orderType prefers "order_type"; "type" is the older duplicate field.
func orderType(o *alpaca.Order) string {
	if o.OrderType != "" {
		return o.OrderType
	}
	return o.Type
}

// FormatSubmittedAt renders t in its own zone, or N/A when absent.
func FormatSubmittedAt(t *time.Time) string {
	if t == nil || t.IsZero() {
		return models.NotAvailable
	}
	return t.Format(models.SubmittedAtLayout)
}
