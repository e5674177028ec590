package model

import "time"

// User is a registered bot user. Currency is empty until /setcurrency.
type User struct {
	TelegramID int64     `json:"telegram_id"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
