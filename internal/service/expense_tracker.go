package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ivanoskov/spending_bot/internal/exchange"
	"github.com/ivanoskov/spending_bot/internal/model"
)

// Period selects the stats window.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Days returns the length of the rolling window in days.
func (p Period) Days() (int, error) {
	switch p {
	case PeriodWeek:
		return 7, nil
	case PeriodMonth:
		return 30, nil
	case PeriodYear:
		return 365, nil
	default:
		return 0, fmt.Errorf("unknown period %q", p)
	}
}

// Title is the human label used in stats messages.
func (p Period) Title() string {
	switch p {
	case PeriodWeek:
		return "Last 7 days"
	case PeriodMonth:
		return "Last 30 days"
	case PeriodYear:
		return "Last 365 days"
	default:
		return string(p)
	}
}

// Stats is a period summary in the user's configured currency.
type Stats struct {
	Period   Period
	Currency string
	Totals   map[string]float64
	Total    float64
}

// Repository is the persistence interface the tracker needs.
type Repository interface {
	CreateUser(ctx context.Context, telegramID int64) error
	SetCurrency(ctx context.Context, telegramID int64, currency string) error
	UserCurrency(ctx context.Context, telegramID int64) (string, error)
	CreateExpense(ctx context.Context, expense *model.Expense) error
	RecentExpenses(ctx context.Context, telegramID int64, limit int) ([]model.Expense, error)
	ExpensesSince(ctx context.Context, telegramID int64, since time.Time) ([]model.Expense, error)
	DeleteExpense(ctx context.Context, telegramID int64, expenseID string) error
}

// ExpenseTracker is the application service: user registration, currency
// settings, expense CRUD for the conversational flows, stats and export.
type ExpenseTracker struct {
	repo  Repository
	rates exchange.RateSource
	now   func() time.Time
}

func NewExpenseTracker(repo Repository, rates exchange.RateSource) *ExpenseTracker {
	return &ExpenseTracker{
		repo:  repo,
		rates: rates,
		now:   time.Now,
	}
}

func (s *ExpenseTracker) RegisterUser(ctx context.Context, userID int64) error {
	return s.repo.CreateUser(ctx, userID)
}

func (s *ExpenseTracker) SetCurrency(ctx context.Context, userID int64, currency string) error {
	return s.repo.SetCurrency(ctx, userID, currency)
}

func (s *ExpenseTracker) UserCurrency(ctx context.Context, userID int64) (string, error) {
	return s.repo.UserCurrency(ctx, userID)
}

// CreateExpense persists a new expense tagged with the user's configured
// currency. The currency lookup errors (ErrUserNotFound, ErrNoCurrency)
// pass through untouched so the flow can tell the user what to fix.
func (s *ExpenseTracker) CreateExpense(ctx context.Context, userID int64, amount float64, category, description string) (*model.Expense, error) {
	currency, err := s.repo.UserCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	expense := &model.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Currency:    currency,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	expense.GenerateID()

	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseTracker) RecentExpenses(ctx context.Context, userID int64, limit int) ([]model.Expense, error) {
	return s.repo.RecentExpenses(ctx, userID, limit)
}

func (s *ExpenseTracker) DeleteExpense(ctx context.Context, userID int64, expenseID string) error {
	return s.repo.DeleteExpense(ctx, userID, expenseID)
}

// Stats aggregates the user's expenses for the period into per-category
// totals in the user's currency. A period with no expenses yields empty
// totals and a zero sum.
func (s *ExpenseTracker) Stats(ctx context.Context, userID int64, period Period) (*Stats, error) {
	days, err := period.Days()
	if err != nil {
		return nil, err
	}

	currency, err := s.repo.UserCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	since := s.now().UTC().AddDate(0, 0, -days)
	expenses, err := s.repo.ExpensesSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	totals, total := exchange.AggregateByCategory(ctx, s.rates, expenses, currency)
	return &Stats{
		Period:   period,
		Currency: currency,
		Totals:   totals,
		Total:    total,
	}, nil
}
