package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ivanoskov/spending_bot/internal/config"
	"github.com/ivanoskov/spending_bot/internal/model"
)

// Sentinel errors. Callers branch on these instead of inspecting messages.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNoCurrency      = errors.New("currency not set")
	ErrExpenseNotFound = errors.New("expense not found")
)

// Repository is the persistence contract for users and expenses.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, telegramID int64) error
	SetCurrency(ctx context.Context, telegramID int64, currency string) error
	// UserCurrency returns ErrUserNotFound for unknown users and
	// ErrNoCurrency for registered users without a configured currency.
	UserCurrency(ctx context.Context, telegramID int64) (string, error)

	// Expenses
	CreateExpense(ctx context.Context, expense *model.Expense) error
	// RecentExpenses returns up to limit expenses, most recent first.
	RecentExpenses(ctx context.Context, telegramID int64, limit int) ([]model.Expense, error)
	ExpensesSince(ctx context.Context, telegramID int64, since time.Time) ([]model.Expense, error)
	// DeleteExpense removes the expense if it exists and belongs to the
	// user; otherwise ErrExpenseNotFound.
	DeleteExpense(ctx context.Context, telegramID int64, expenseID string) error
}

// New builds the repository selected by the configuration.
func New(cfg *config.Config) (Repository, error) {
	switch cfg.Backend {
	case config.BackendSupabase:
		return NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	case config.BackendSQLite:
		return NewSQLiteRepository(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
