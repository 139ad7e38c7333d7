package normalize

import (
	"errors"
	"fmt"
	"time"

	"github.com/gregtusar/paper-dashboard/pkg/alpaca"
	"github.com/gregtusar/paper-dashboard/pkg/models"
)

// ErrMisalignedHistory means the timestamp and equity arrays differ in length.
var ErrMisalignedHistory = errors.New("portfolio history timestamps and equity are misaligned")

// History zips the parallel timestamp/equity arrays into points, converting
// epoch seconds into loc. A nil loc means time.Local.
func History(raw *alpaca.PortfolioHistory, loc *time.Location) ([]models.EquityPoint, error) {
	if raw == nil {
		return []models.EquityPoint{}, nil
	}
	if len(raw.Timestamp) != len(raw.Equity) {
		return nil, fmt.Errorf("%w: %d timestamps, %d equity values",
			ErrMisalignedHistory, len(raw.Timestamp), len(raw.Equity))
	}
	if loc == nil {
		loc = time.Local
	}

	points := make([]models.EquityPoint, 0, len(raw.Timestamp))
	for i, ts := range raw.Timestamp {
		equity, err := toNullDecimal("equity", raw.Equity[i])
		if err != nil {
			return nil, fmt.Errorf("history point %d: %w", i, err)
		}
		points = append(points, models.EquityPoint{
			Time:   time.Unix(ts, 0).In(loc),
			Equity: equity,
		})
	}
	return points, nil
}
