package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// ExportCSV renders the user's full expense history as CSV, oldest first.
// Amounts keep their original currency; no conversion is applied.
func (s *ExpenseTracker) ExportCSV(ctx context.Context, userID int64) ([]byte, error) {
	if _, err := s.repo.UserCurrency(ctx, userID); err != nil {
		return nil, err
	}

	expenses, err := s.repo.ExpensesSince(ctx, userID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "amount", "currency", "category", "description"}); err != nil {
		return nil, err
	}
	for _, e := range expenses {
		record := []string{
			e.CreatedAt.Format(time.RFC3339),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Currency,
			e.Category,
			e.Description,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
