// Package render prints a dashboard view as plain-text tables.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gregtusar/paper-dashboard/pkg/dashboard"
	"github.com/gregtusar/paper-dashboard/pkg/models"
	"github.com/gregtusar/paper-dashboard/pkg/session"
	"github.com/olekukonko/tablewriter"
)

const timeLayout = "2006-01-02 15:04"

type Renderer struct {
	out io.Writer
}

func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// View writes the whole dashboard in the same section order as the web UI.
func (r *Renderer) View(v *dashboard.View) {
	fmt.Fprintf(r.out, "Account ID (%s): %s\n\n", v.Label, v.Account.ID)
	fmt.Fprintln(r.out, "Alpaca Paper Trading Dashboard")
	fmt.Fprintln(r.out, strings.Repeat("=", 30))

	for _, n := range v.Notices {
		r.notice(n)
	}

	r.heading("Account Overview")
	r.Balance(v.Balance)

	r.heading("Active Positions")
	if v.Positions.HasData() {
		r.Positions(v.Positions.Data)
	} else {
		r.warn("No active positions available.")
	}

	r.heading(fmt.Sprintf("Portfolio History (%d Days)", v.HistoryDays))
	if v.History.HasData() {
		r.History(v.History.Data)
	} else {
		r.warn("No portfolio history data available.")
	}

	r.heading("Order History")
	if v.Orders.HasData() {
		r.Orders(v.Orders.Data)
	} else {
		r.warn("No order history data available.")
	}
}

func (r *Renderer) Balance(metrics []models.Metric) {
	if len(metrics) == 0 {
		r.warn("No balance data available.")
		return
	}
	for _, m := range metrics {
		if m.Monetary {
			fmt.Fprintf(r.out, "%-14s %s\n", m.Label+":", Money(m.Amount))
		} else {
			fmt.Fprintf(r.out, "%-14s %s\n", m.Label+":", m.Text)
		}
	}
}

func (r *Renderer) Positions(rows []models.PositionRow) {
	table := r.table([]string{"Symbol", "Qty", "Market Value", "Cost Basis", "Unrealized P/L", "Change (%)"})
	for _, p := range rows {
		table.Append([]string{
			p.Symbol,
			p.Qty.String(),
			Money(p.MarketValue),
			Money(p.CostBasis),
			Money(p.UnrealizedPL),
			Percent(p.ChangePercent),
		})
	}
	table.Render()
}

func (r *Renderer) Orders(rows []models.OrderRow) {
	table := r.table([]string{"ID", "Symbol", "Type", "Side", "Qty", "Filled", "Status", "Submitted At"})
	for _, o := range rows {
		table.Append([]string{
			o.ID,
			o.Symbol,
			string(o.Type),
			string(o.Side),
			Qty(o.Qty),
			o.FilledQty.String(),
			string(o.Status),
			o.SubmittedAt,
		})
	}
	table.Render()
}

// History summarizes the equity series; the chart itself belongs to the
// web frontend.
func (r *Renderer) History(points []models.EquityPoint) {
	s := Summarize(points)
	table := r.table([]string{"From", "To", "Points", "Start", "End", "Low", "High"})
	table.Append([]string{
		s.From.Format(timeLayout),
		s.To.Format(timeLayout),
		fmt.Sprintf("%d", s.Points),
		Money(s.Start),
		Money(s.End),
		Money(s.Low),
		Money(s.High),
	})
	table.Render()
}

// Accounts lists configured accounts and whether their sessions are usable.
func (r *Renderer) Accounts(statuses []session.AccountStatus) {
	table := r.table([]string{"Account", "Ready", "Error"})
	for _, st := range statuses {
		ready := "yes"
		if !st.Ready {
			ready = "no"
		}
		table.Append([]string{st.Label, ready, st.Error})
	}
	table.Render()
}

func (r *Renderer) table(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func (r *Renderer) heading(title string) {
	fmt.Fprintf(r.out, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func (r *Renderer) warn(msg string) {
	fmt.Fprintf(r.out, "! %s\n", msg)
}

func (r *Renderer) notice(n dashboard.Notice) {
	fmt.Fprintf(r.out, "[%s] %s\n", strings.ToUpper(string(n.Level)), n.Message)
}
