package exchange

import (
	"context"
	"math"
	"testing"

	"github.com/ivanoskov/spending_bot/internal/model"
)

// staticRates serves fixed multipliers without any provider or cache.
type staticRates map[[2]string]float64

func (r staticRates) Rate(ctx context.Context, from, to string) float64 {
	if from == to {
		return 1.0
	}
	return r[[2]string{from, to}]
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestConvertSameCurrency(t *testing.T) {
	if got := Convert(context.Background(), staticRates{}, 10, "USD", "USD"); got != 10 {
		t.Errorf("Convert(10, USD, USD) = %v, want 10", got)
	}
}

func TestAggregateEmpty(t *testing.T) {
	totals, total := AggregateByCategory(context.Background(), staticRates{}, nil, "USD")
	if len(totals) != 0 {
		t.Errorf("totals for empty input = %v, want empty", totals)
	}
	if total != 0.0 {
		t.Errorf("total for empty input = %v, want 0", total)
	}
}

func TestAggregateMixedCurrencies(t *testing.T) {
	rates := staticRates{{"EUR", "USD"}: 1.1}
	expenses := []model.Expense{
		{Amount: 10, Category: "Food", Currency: "USD"},
		{Amount: 5, Category: "Food", Currency: "USD"},
		{Amount: 7, Category: "Transport", Currency: "EUR"},
	}

	totals, total := AggregateByCategory(context.Background(), rates, expenses, "USD")

	if !almostEqual(totals["Food"], 15.0) {
		t.Errorf("Food total = %v, want 15.0", totals["Food"])
	}
	if !almostEqual(totals["Transport"], 7.7) {
		t.Errorf("Transport total = %v, want 7.7", totals["Transport"])
	}
	if !almostEqual(total, 22.7) {
		t.Errorf("grand total = %v, want 22.7", total)
	}
	if len(totals) != 2 {
		t.Errorf("got %d categories, want 2", len(totals))
	}
}

func TestAggregateCaseSensitiveCategories(t *testing.T) {
	expenses := []model.Expense{
		{Amount: 1, Category: "Food", Currency: "USD"},
		{Amount: 2, Category: "food", Currency: "USD"},
	}

	totals, _ := AggregateByCategory(context.Background(), staticRates{}, expenses, "USD")
	if len(totals) != 2 {
		t.Errorf("got %d categories, want 2 (labels merge case-sensitively)", len(totals))
	}
}
