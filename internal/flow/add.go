package flow

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/labstack/gommon/log"

	"github.com/ivanoskov/spending_bot/internal/model"
	"github.com/ivanoskov/spending_bot/internal/repository"
)

// StartAdd begins the add-expense flow. Any prior flow for the user is
// silently discarded, partial input included.
func (e *Engine) StartAdd(userID int64) Reply {
	e.sessions.Set(userID, AddAwaitingAmount{})
	return Reply{Text: "Enter the amount:", Keyboard: KeyboardRemove}
}

func (e *Engine) handleAmount(userID int64, text string) Reply {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{Text: "Amount cannot be empty. Please enter the amount:"}
	}
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Reply{Text: "Amount must be a number. Please enter the amount:"}
	}
	if amount <= 0 {
		return Reply{Text: "Amount must be greater than zero. Please enter the amount:"}
	}

	e.sessions.Set(userID, AddAwaitingCategory{Amount: amount})
	return Reply{Text: "Choose a category:", Keyboard: KeyboardCategories}
}

func (e *Engine) handleCategory(userID int64, s AddAwaitingCategory, text string) Reply {
	if !model.IsDefaultCategory(text) {
		return Reply{Text: "Please choose a category from the list.", Keyboard: KeyboardCategories}
	}

	e.sessions.Set(userID, AddAwaitingDescription{Amount: s.Amount, Category: text})
	return Reply{Text: "Enter a description (or type '-' to skip):", Keyboard: KeyboardRemove}
}

func (e *Engine) handleDescription(ctx context.Context, userID int64, s AddAwaitingDescription, text string) Reply {
	description := text
	if description == "-" {
		description = ""
	}

	exp, err := e.gw.CreateExpense(ctx, userID, s.Amount, s.Category, description)
	switch {
	case errors.Is(err, repository.ErrNoCurrency):
		return e.abort(userID, "Could not add expense: set your currency first with /setcurrency.")
	case errors.Is(err, repository.ErrUserNotFound):
		return e.abort(userID, "Could not add expense: user not found. Send /start first.")
	case err != nil:
		log.Errorf("flow: create expense for user %d: %v", userID, err)
		return e.abort(userID, "Could not add expense. Please try /add again.")
	}

	e.sessions.Clear(userID)
	return Reply{Text: "✅ Added expense: " + describeExpense(*exp), Keyboard: KeyboardRemove}
}
