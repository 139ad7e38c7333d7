package render

import (
	"time"

	"github.com/gregtusar/paper-dashboard/pkg/models"
	"github.com/shopspring/decimal"
)

// Summary condenses an equity series. Null samples count toward Points but
// not toward the equity figures.
type Summary struct {
	From   time.Time
	To     time.Time
	Points int
	Start  decimal.Decimal
	End    decimal.Decimal
	Low    decimal.Decimal
	High   decimal.Decimal
}

func Summarize(points []models.EquityPoint) Summary {
	var s Summary
	if len(points) == 0 {
		return s
	}
	s.From = points[0].Time
	s.To = points[len(points)-1].Time
	s.Points = len(points)

	seen := false
	for _, p := range points {
		if !p.Equity.Valid {
			continue
		}
		v := p.Equity.Decimal
		if !seen {
			s.Start, s.Low, s.High = v, v, v
			seen = true
		}
		s.End = v
		if v.LessThan(s.Low) {
			s.Low = v
		}
		if v.GreaterThan(s.High) {
			s.High = v
		}
	}
	return s
}
