package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/gregtusar/paper-dashboard/pkg/dashboard"
	"github.com/gregtusar/paper-dashboard/pkg/models"
	"github.com/gregtusar/paper-dashboard/pkg/normalize"
	"github.com/gregtusar/paper-dashboard/pkg/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1,000.50", Money(decimal.RequireFromString("1000.5")))
	assert.Equal(t, "$0.00", Money(decimal.Zero))
	assert.Equal(t, "$1,234,567.89", Money(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "$1.01", Money(decimal.RequireFromString("1.005")))
	assert.Equal(t, "$9,007,199,254,740,993.00", Money(decimal.RequireFromString("9007199254740993")))
	assert.Equal(t, "-$42.10", Money(decimal.RequireFromString("-42.1")))
	assert.Equal(t, "$0.00", Money(decimal.RequireFromString("-0.001")))
}

func TestPercentAndQty(t *testing.T) {
	assert.Equal(t, "7.14%", Percent(decimal.RequireFromString("7.14")))
	assert.Equal(t, "-25.00%", Percent(decimal.NewFromInt(-25)))
	assert.Equal(t, "-", Qty(decimal.NullDecimal{}))
	assert.Equal(t, "1.5", Qty(decimal.NewNullDecimal(decimal.RequireFromString("1.5"))))
}

func TestSummarize(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	points := []models.EquityPoint{
		{Time: t0, Equity: decimal.NullDecimal{}},
		{Time: t0.Add(time.Minute), Equity: decimal.NewNullDecimal(decimal.NewFromInt(100))},
		{Time: t0.Add(2 * time.Minute), Equity: decimal.NewNullDecimal(decimal.NewFromInt(90))},
		{Time: t0.Add(3 * time.Minute), Equity: decimal.NewNullDecimal(decimal.NewFromInt(120))},
		{Time: t0.Add(4 * time.Minute), Equity: decimal.NewNullDecimal(decimal.NewFromInt(110))},
	}

	s := Summarize(points)

	assert.Equal(t, 5, s.Points)
	assert.Equal(t, t0, s.From)
	assert.Equal(t, t0.Add(4*time.Minute), s.To)
	assert.True(t, decimal.NewFromInt(100).Equal(s.Start))
	assert.True(t, decimal.NewFromInt(110).Equal(s.End))
	assert.True(t, decimal.NewFromInt(90).Equal(s.Low))
	assert.True(t, decimal.NewFromInt(120).Equal(s.High))

	assert.Equal(t, 0, Summarize(nil).Points)
}

func TestView(t *testing.T) {
	snap := models.AccountSnapshot{
		ID:          "abc",
		Equity:      decimal.RequireFromString("1000.50"),
		LastEquity:  decimal.RequireFromString("990"),
		BuyingPower: decimal.RequireFromString("2000"),
		Cash:        decimal.RequireFromString("500.25"),
	}
	view := &dashboard.View{
		Label:   "H1",
		Account: snap,
		Balance: normalize.Metrics(snap),
		Positions: dashboard.Succeeded([]models.PositionRow{{
			Symbol:        "AAPL",
			Qty:           decimal.NewFromInt(10),
			MarketValue:   decimal.NewFromInt(1500),
			CostBasis:     decimal.NewFromInt(1400),
			UnrealizedPL:  decimal.NewFromInt(100),
			ChangePercent: decimal.RequireFromString("7.14"),
		}}),
		History: dashboard.Failed[models.EquityPoint](errors.New("boom")),
		Orders: dashboard.Succeeded([]models.OrderRow{{
			ID:          "o1",
			Symbol:      "AAPL",
			Type:        models.OrderTypeMarket,
			Side:        models.OrderSideBuy,
			FilledQty:   decimal.NewFromInt(1),
			Status:      models.OrderStatusFilled,
			SubmittedAt: models.NotAvailable,
		}}),
		HistoryDays: 5,
		Notices:     []dashboard.Notice{{Level: dashboard.LevelError, Message: "Error fetching portfolio history: boom"}},
	}

	var buf bytes.Buffer
	New(&buf).View(view)
	out := buf.String()

	assert.Contains(t, out, "Account ID (H1): abc")
	assert.Contains(t, out, "Equity:")
	assert.Contains(t, out, "$1,000.50")
	assert.Contains(t, out, "$500.25")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "7.14%")
	assert.Contains(t, out, "[ERROR] Error fetching portfolio history: boom")
	assert.Contains(t, out, "Portfolio History (5 Days)")
	assert.Contains(t, out, "No portfolio history data available.")
	assert.Contains(t, out, "Submitted At")
	assert.Contains(t, out, "N/A")
	assert.NotContains(t, out, "No active positions available.")
}

func TestView_EmptySections(t *testing.T) {
	view := &dashboard.View{
		Label:       "R1",
		Positions:   dashboard.Succeeded[models.PositionRow](nil),
		History:     dashboard.Succeeded[models.EquityPoint](nil),
		Orders:      dashboard.Succeeded[models.OrderRow](nil),
		HistoryDays: 5,
	}

	var buf bytes.Buffer
	New(&buf).View(view)
	out := buf.String()

	assert.Contains(t, out, "No balance data available.")
	assert.Contains(t, out, "No active positions available.")
	assert.Contains(t, out, "No portfolio history data available.")
	assert.Contains(t, out, "No order history data available.")
}

func TestAccounts(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Accounts([]session.AccountStatus{
		{Label: "H1", Ready: true},
		{Label: "H2", Error: "account H2: alpaca: missing api key or secret"},
	})

	out := buf.String()
	assert.Contains(t, out, "H1")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
	assert.Contains(t, out, "missing api key or secret")
}
