package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ivanoskov/spending_bot/internal/model"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	telegram_id INTEGER PRIMARY KEY,
	currency    TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS expenses (
	id          TEXT PRIMARY KEY,
	user_id     INTEGER NOT NULL REFERENCES users(telegram_id),
	amount      REAL NOT NULL,
	category    TEXT NOT NULL,
	currency    TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_expenses_user_created ON expenses(user_id, created_at);
`

// SQLiteRepository is the local single-file backend. Timestamps are stored
// as unix nanoseconds so ordering and round-trips stay exact.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, telegramID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO users (telegram_id, created_at) VALUES (?, ?)",
		telegramID, time.Now().UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SetCurrency(ctx context.Context, telegramID int64, currency string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET currency = ? WHERE telegram_id = ?",
		currency, telegramID)
	if err != nil {
		return fmt.Errorf("failed to set currency: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *SQLiteRepository) UserCurrency(ctx context.Context, telegramID int64) (string, error) {
	var currency string
	err := r.db.QueryRowContext(ctx,
		"SELECT currency FROM users WHERE telegram_id = ?", telegramID).Scan(&currency)
	if err == sql.ErrNoRows {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get currency: %w", err)
	}
	if currency == "" {
		return "", ErrNoCurrency
	}
	return currency, nil
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, expense *model.Expense) error {
	expense.GenerateID()
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO expenses (id, user_id, amount, category, currency, description, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.UserID, expense.Amount, expense.Category,
		expense.Currency, expense.Description, expense.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) RecentExpenses(ctx context.Context, telegramID int64, limit int) ([]model.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, amount, category, currency, description, created_at FROM expenses WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func (r *SQLiteRepository) ExpensesSince(ctx context.Context, telegramID int64, since time.Time) ([]model.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, amount, category, currency, description, created_at FROM expenses WHERE user_id = ? AND created_at >= ? ORDER BY created_at ASC",
		telegramID, since.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, telegramID int64, expenseID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ?",
		expenseID, telegramID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func scanExpenses(rows *sql.Rows) ([]model.Expense, error) {
	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Currency, &e.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
