package exchange

import (
	"context"

	"github.com/ivanoskov/spending_bot/internal/model"
)

// RateSource yields conversion multipliers. Implemented by RateCache.
type RateSource interface {
	Rate(ctx context.Context, from, to string) float64
}

// Convert translates amount from one currency into another.
func Convert(ctx context.Context, rates RateSource, amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	return amount * rates.Rate(ctx, from, to)
}

// AggregateByCategory converts every expense into the target currency and
// sums the results per category, returning the per-category totals and the
// grand total. An empty input yields an empty map and a zero total.
//
// Amounts stay plain floats all the way through; rounding happens only when
// a total is formatted for display.
func AggregateByCategory(ctx context.Context, rates RateSource, expenses []model.Expense, target string) (map[string]float64, float64) {
	totals := make(map[string]float64)
	sum := 0.0
	for _, e := range expenses {
		converted := Convert(ctx, rates, e.Amount, e.Currency, target)
		totals[e.Category] += converted
		sum += converted
	}
	return totals, sum
}
