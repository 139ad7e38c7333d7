package normalize

import (
	"github.com/gregtusar/paper-dashboard/pkg/alpaca"
	"github.com/gregtusar/paper-dashboard/pkg/models"
)

// Account coerces the balance fields of a raw account.
func Account(raw *alpaca.Account) (models.AccountSnapshot, error) {
	if raw == nil {
		return models.AccountSnapshot{}, nil
	}

	var (
		snap models.AccountSnapshot
		err  error
	)
	snap.ID = raw.ID
	if snap.Equity, err = toDecimal("equity", raw.Equity); err != nil {
		return models.AccountSnapshot{}, err
	}
	if snap.LastEquity, err = toDecimal("last_equity", raw.LastEquity); err != nil {
		return models.AccountSnapshot{}, err
	}
	if snap.BuyingPower, err = toDecimal("buying_power", raw.BuyingPower); err != nil {
		return models.AccountSnapshot{}, err
	}
	if snap.Cash, err = toDecimal("cash", raw.Cash); err != nil {
		return models.AccountSnapshot{}, err
	}
	return snap, nil
}

// Balance returns the account overview metrics in display order:
// Account ID, Equity, Last Equity, Buying Power, Cash.
func Balance(raw *alpaca.Account) ([]models.Metric, error) {
	if raw == nil {
		return []models.Metric{}, nil
	}
	snap, err := Account(raw)
	if err != nil {
		return nil, err
	}
	return Metrics(snap), nil
}

// Metrics lays out an already coerced snapshot as overview metrics.
func Metrics(snap models.AccountSnapshot) []models.Metric {
	return []models.Metric{
		{Label: models.MetricAccountID, Text: snap.ID},
		{Label: models.MetricEquity, Amount: snap.Equity, Monetary: true},
		{Label: models.MetricLastEquity, Amount: snap.LastEquity, Monetary: true},
		{Label: models.MetricBuyingPower, Amount: snap.BuyingPower, Monetary: true},
		{Label: models.MetricCash, Amount: snap.Cash, Monetary: true},
	}
}
