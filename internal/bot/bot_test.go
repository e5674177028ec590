package bot

import (
	"strings"
	"testing"

	"github.com/ivanoskov/spending_bot/internal/service"
)

func TestValidCurrency(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "GBP"} {
		if !validCurrency(code) {
			t.Errorf("validCurrency(%q) = false", code)
		}
	}
	for _, code := range []string{"", "US", "USDX", "us1", "usd"} {
		if validCurrency(code) {
			t.Errorf("validCurrency(%q) = true", code)
		}
	}
}

func TestFormatStatsEmpty(t *testing.T) {
	text := formatStats(&service.Stats{Period: service.PeriodWeek, Currency: "USD"})
	if !strings.Contains(text, "No expenses found") {
		t.Errorf("empty stats = %q, want a no-expenses message", text)
	}
}

func TestFormatStatsSortedByAmount(t *testing.T) {
	text := formatStats(&service.Stats{
		Period:   service.PeriodMonth,
		Currency: "USD",
		Totals:   map[string]float64{"Food": 15, "Transport": 7.7},
		Total:    22.7,
	})

	if !strings.Contains(text, "Total: 22.70 USD") {
		t.Errorf("stats = %q, want the two-decimal grand total", text)
	}
	if strings.Index(text, "Food") > strings.Index(text, "Transport") {
		t.Errorf("stats = %q, want categories sorted by amount descending", text)
	}
}
