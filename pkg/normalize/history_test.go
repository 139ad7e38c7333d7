package normalize

import (
	"testing"
	"time"

	"github.com/gregtusar/paper-dashboard/pkg/alpaca"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Empty(t *testing.T) {
	points, err := History(nil, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, points)

	points, err = History(&alpaca.PortfolioHistory{}, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestHistory_ZipsInOrder(t *testing.T) {
	raw := &alpaca.PortfolioHistory{
		Timestamp: []int64{1700000000, 1700000060, 1700000120},
		Equity:    []alpaca.Number{"100000", "100010.5", "99990.25"},
		Timeframe: "1Min",
	}

	points, err := History(raw, time.UTC)
	require.NoError(t, err)
	require.Len(t, points, 3)

	for i, p := range points {
		assert.Equal(t, time.Unix(raw.Timestamp[i], 0).UTC(), p.Time)
		assert.Equal(t, time.UTC, p.Time.Location())
		require.True(t, p.Equity.Valid)
		assert.True(t, decimal.RequireFromString(raw.Equity[i].String()).Equal(p.Equity.Decimal))
		if i > 0 {
			assert.True(t, p.Time.After(points[i-1].Time))
		}
	}
}

func TestHistory_ConvertsToLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	raw := &alpaca.PortfolioHistory{
		Timestamp: []int64{0},
		Equity:    []alpaca.Number{"1"},
	}

	points, err := History(raw, tokyo)
	require.NoError(t, err)
	assert.Equal(t, 9, points[0].Time.Hour())
	assert.Equal(t, int64(0), points[0].Time.Unix())
}

func TestHistory_NilLocationUsesLocal(t *testing.T) {
	raw := &alpaca.PortfolioHistory{Timestamp: []int64{1}, Equity: []alpaca.Number{"1"}}

	points, err := History(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Local, points[0].Time.Location())
}

func TestHistory_NullEquity(t *testing.T) {
	raw := &alpaca.PortfolioHistory{
		Timestamp: []int64{1, 2},
		Equity:    []alpaca.Number{"", "5"},
	}

	points, err := History(raw, time.UTC)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.False(t, points[0].Equity.Valid)
	assert.True(t, points[1].Equity.Valid)
}

func TestHistory_Misaligned(t *testing.T) {
	raw := &alpaca.PortfolioHistory{
		Timestamp: []int64{1, 2, 3},
		Equity:    []alpaca.Number{"1", "2"},
	}

	points, err := History(raw, time.UTC)
	assert.Nil(t, points)
	assert.ErrorIs(t, err, ErrMisalignedHistory)
}
