package models

import (
	"github.com/shopspring/decimal"
)

// NotAvailable stands in for a missing submission timestamp.
const NotAvailable = "N/A"

// SubmittedAtLayout is the display layout for order submission times.
const SubmittedAtLayout = "2006-01-02 15:04:05"

type OrderRow struct {
	ID          string              `json:"id"`
	Symbol      string              `json:"symbol"`
	Type        OrderType           `json:"type"`
	Side        OrderSide           `json:"side"`
	Qty         decimal.NullDecimal `json:"qty"`
	FilledQty   decimal.Decimal     `json:"filled_qty"`
	Status      OrderStatus         `json:"status"`
	SubmittedAt string              `json:"submitted_at"`
}

type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

type OrderType string

const (
	OrderTypeMarket       OrderType = "market"
	OrderTypeLimit        OrderType = "limit"
	OrderTypeStop         OrderType = "stop"
	OrderTypeStopLimit    OrderType = "stop_limit"
	OrderTypeTrailingStop OrderType = "trailing_stop"
)

// OrderStatus values are passed through from upstream; the set below is the
// one the dashboard knows about, not an exhaustive validation list.
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "new"
	OrderStatusAccepted        OrderStatus = "accepted"
	OrderStatusPendingNew      OrderStatus = "pending_new"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusDoneForDay      OrderStatus = "done_for_day"
	OrderStatusCanceled        OrderStatus = "canceled"
	OrderStatusPendingCancel   OrderStatus = "pending_cancel"
	OrderStatusExpired         OrderStatus = "expired"
	OrderStatusReplaced        OrderStatus = "replaced"
	OrderStatusRejected        OrderStatus = "rejected"
	OrderStatusSuspended       OrderStatus = "suspended"
)
