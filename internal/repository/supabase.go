package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/spending_bot/internal/model"
)

// SupabaseRepository stores users and expenses in Supabase tables "users"
// and "expenses".
type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) CreateUser(ctx context.Context, telegramID int64) error {
	// Check first so a repeated /start never resets an existing user's
	// currency.
	data, _, err := r.client.From("users").
		Select("telegram_id", "", false).
		Eq("telegram_id", strconv.FormatInt(telegramID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	var existing []model.User
	if err := json.Unmarshal(data, &existing); err != nil {
		return fmt.Errorf("failed to parse user: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	user := model.User{
		TelegramID: telegramID,
		CreatedAt:  time.Now().UTC(),
	}
	if _, _, err := r.client.From("users").Insert(user, false, "", "", "").Execute(); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) SetCurrency(ctx context.Context, telegramID int64, currency string) error {
	data, _, err := r.client.From("users").
		Update(map[string]string{"currency": currency}, "", "").
		Eq("telegram_id", strconv.FormatInt(telegramID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to set currency: %w", err)
	}

	var updated []model.User
	if err := json.Unmarshal(data, &updated); err != nil {
		return fmt.Errorf("failed to parse updated user: %w", err)
	}
	if len(updated) == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *SupabaseRepository) UserCurrency(ctx context.Context, telegramID int64) (string, error) {
	data, _, err := r.client.From("users").
		Select("currency", "", false).
		Eq("telegram_id", strconv.FormatInt(telegramID, 10)).
		Execute()
	if err != nil {
		return "", fmt.Errorf("failed to get currency: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return "", fmt.Errorf("failed to parse user: %w", err)
	}
	if len(users) == 0 {
		return "", ErrUserNotFound
	}
	if users[0].Currency == "" {
		return "", ErrNoCurrency
	}
	return users[0].Currency, nil
}

func (r *SupabaseRepository) CreateExpense(ctx context.Context, expense *model.Expense) error {
	expense.GenerateID()
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	_, _, err := r.client.From("expenses").Insert(expense, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) RecentExpenses(ctx context.Context, telegramID int64, limit int) ([]model.Expense, error) {
	data, _, err := r.client.From("expenses").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(telegramID, 10)).
		Order("created_at.desc", nil).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent expenses: %w", err)
	}

	var expenses []model.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, fmt.Errorf("failed to parse expenses: %w", err)
	}
	return expenses, nil
}

func (r *SupabaseRepository) ExpensesSince(ctx context.Context, telegramID int64, since time.Time) ([]model.Expense, error) {
	data, _, err := r.client.From("expenses").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(telegramID, 10)).
		Gte("created_at", since.Format(time.RFC3339)).
		Order("created_at.asc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []model.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, fmt.Errorf("failed to parse expenses: %w", err)
	}
	return expenses, nil
}

func (r *SupabaseRepository) DeleteExpense(ctx context.Context, telegramID int64, expenseID string) error {
	data, _, err := r.client.From("expenses").
		Delete("", "").
		Eq("id", expenseID).
		Eq("user_id", strconv.FormatInt(telegramID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	var deleted []model.Expense
	if err := json.Unmarshal(data, &deleted); err != nil {
		return fmt.Errorf("failed to parse deleted expense: %w", err)
	}
	if len(deleted) == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
