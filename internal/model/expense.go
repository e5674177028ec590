package model

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single spending record. Amount is stored in the currency the
// user had configured at the moment the expense was added.
type Expense struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerateID assigns a fresh UUID if the expense does not have one yet.
func (e *Expense) GenerateID() {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
}
