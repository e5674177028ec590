package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/ivanoskov/spending_bot/internal/model"
	"github.com/ivanoskov/spending_bot/internal/repository"
)

type fakeRepo struct {
	currency    string
	currencyErr error

	expenses []model.Expense
	created  []*model.Expense
	sinceArg time.Time
}

func (r *fakeRepo) CreateUser(ctx context.Context, telegramID int64) error { return nil }

func (r *fakeRepo) SetCurrency(ctx context.Context, telegramID int64, currency string) error {
	r.currency = currency
	return nil
}

func (r *fakeRepo) UserCurrency(ctx context.Context, telegramID int64) (string, error) {
	if r.currencyErr != nil {
		return "", r.currencyErr
	}
	return r.currency, nil
}

func (r *fakeRepo) CreateExpense(ctx context.Context, expense *model.Expense) error {
	r.created = append(r.created, expense)
	return nil
}

func (r *fakeRepo) RecentExpenses(ctx context.Context, telegramID int64, limit int) ([]model.Expense, error) {
	return r.expenses, nil
}

func (r *fakeRepo) ExpensesSince(ctx context.Context, telegramID int64, since time.Time) ([]model.Expense, error) {
	r.sinceArg = since
	return r.expenses, nil
}

func (r *fakeRepo) DeleteExpense(ctx context.Context, telegramID int64, expenseID string) error {
	return nil
}

type staticRates map[[2]string]float64

func (r staticRates) Rate(ctx context.Context, from, to string) float64 {
	if from == to {
		return 1.0
	}
	return r[[2]string{from, to}]
}

func TestCreateExpenseTagsUserCurrency(t *testing.T) {
	repo := &fakeRepo{currency: "EUR"}
	tracker := NewExpenseTracker(repo, staticRates{})

	exp, err := tracker.CreateExpense(context.Background(), 7, 12.5, "Food", "coffee")
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if exp.Currency != "EUR" {
		t.Errorf("currency = %q, want the user's EUR", exp.Currency)
	}
	if exp.ID == "" {
		t.Error("expense has no generated ID")
	}
	if exp.CreatedAt.IsZero() {
		t.Error("expense has no creation timestamp")
	}
	if len(repo.created) != 1 {
		t.Errorf("persisted %d expenses, want 1", len(repo.created))
	}
}

func TestCreateExpensePropagatesCurrencyErrors(t *testing.T) {
	for _, sentinel := range []error{repository.ErrNoCurrency, repository.ErrUserNotFound} {
		repo := &fakeRepo{currencyErr: sentinel}
		tracker := NewExpenseTracker(repo, staticRates{})

		_, err := tracker.CreateExpense(context.Background(), 7, 1, "Food", "")
		if !errors.Is(err, sentinel) {
			t.Errorf("err = %v, want %v", err, sentinel)
		}
		if len(repo.created) != 0 {
			t.Error("expense persisted despite the precondition failure")
		}
	}
}

func TestStatsAggregatesInUserCurrency(t *testing.T) {
	repo := &fakeRepo{
		currency: "USD",
		expenses: []model.Expense{
			{Amount: 10, Category: "Food", Currency: "USD"},
			{Amount: 5, Category: "Food", Currency: "USD"},
			{Amount: 7, Category: "Transport", Currency: "EUR"},
		},
	}
	tracker := NewExpenseTracker(repo, staticRates{{"EUR", "USD"}: 1.1})

	stats, err := tracker.Stats(context.Background(), 7, PeriodMonth)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Currency != "USD" {
		t.Errorf("stats currency = %q, want USD", stats.Currency)
	}
	if math.Abs(stats.Totals["Food"]-15.0) > 1e-9 {
		t.Errorf("Food = %v, want 15.0", stats.Totals["Food"])
	}
	if math.Abs(stats.Totals["Transport"]-7.7) > 1e-9 {
		t.Errorf("Transport = %v, want 7.7", stats.Totals["Transport"])
	}
	if math.Abs(stats.Total-22.7) > 1e-9 {
		t.Errorf("total = %v, want 22.7", stats.Total)
	}
}

func TestStatsEmptyPeriod(t *testing.T) {
	repo := &fakeRepo{currency: "USD"}
	tracker := NewExpenseTracker(repo, staticRates{})

	stats, err := tracker.Stats(context.Background(), 7, PeriodWeek)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats.Totals) != 0 || stats.Total != 0 {
		t.Errorf("stats for empty period = %+v, want empty totals and zero sum", stats)
	}
}

func TestStatsPeriodWindows(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		period Period
		days   int
	}{
		{PeriodWeek, 7},
		{PeriodMonth, 30},
		{PeriodYear, 365},
	}

	for _, tc := range cases {
		repo := &fakeRepo{currency: "USD"}
		tracker := NewExpenseTracker(repo, staticRates{})
		tracker.now = func() time.Time { return now }

		if _, err := tracker.Stats(context.Background(), 7, tc.period); err != nil {
			t.Fatalf("Stats(%s): %v", tc.period, err)
		}
		want := now.AddDate(0, 0, -tc.days)
		if !repo.sinceArg.Equal(want) {
			t.Errorf("%s window starts at %v, want %v", tc.period, repo.sinceArg, want)
		}
	}
}

func TestStatsRequiresCurrency(t *testing.T) {
	repo := &fakeRepo{currencyErr: repository.ErrNoCurrency}
	tracker := NewExpenseTracker(repo, staticRates{})

	if _, err := tracker.Stats(context.Background(), 7, PeriodWeek); !errors.Is(err, repository.ErrNoCurrency) {
		t.Errorf("err = %v, want ErrNoCurrency", err)
	}
}

func TestStatsUnknownPeriod(t *testing.T) {
	tracker := NewExpenseTracker(&fakeRepo{currency: "USD"}, staticRates{})
	if _, err := tracker.Stats(context.Background(), 7, Period("decade")); err == nil {
		t.Error("Stats accepted an unknown period")
	}
}

func TestExportCSV(t *testing.T) {
	created := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	repo := &fakeRepo{
		currency: "USD",
		expenses: []model.Expense{
			{Amount: 12.5, Category: "Food", Currency: "USD", Description: "lunch", CreatedAt: created},
			{Amount: 7, Category: "Transport", Currency: "EUR", CreatedAt: created.Add(time.Hour)},
		},
	}
	tracker := NewExpenseTracker(repo, staticRates{})

	data, err := tracker.ExportCSV(context.Background(), 7)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d CSV lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if lines[0] != "date,amount,currency,category,description" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "12.50") || !strings.Contains(lines[1], "lunch") {
		t.Errorf("first row = %q, want amount 12.50 and description lunch", lines[1])
	}
}

func TestExportCSVRequiresRegisteredUser(t *testing.T) {
	repo := &fakeRepo{currencyErr: repository.ErrUserNotFound}
	tracker := NewExpenseTracker(repo, staticRates{})

	if _, err := tracker.ExportCSV(context.Background(), 7); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
