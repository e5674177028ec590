package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/gommon/log"

	"github.com/ivanoskov/spending_bot/internal/model"
	"github.com/ivanoskov/spending_bot/internal/session"
)

// RecentLimit is how many recent expenses the remove flow offers.
const RecentLimit = 5

// Keyboard tells the transport which keyboard to show with a reply. The
// engine never renders UI itself.
type Keyboard int

const (
	KeyboardNone       Keyboard = iota
	KeyboardRemove              // hide any custom keyboard
	KeyboardCategories          // one button per default category
	KeyboardConfirm             // yes / no
)

// Reply is the engine's answer to one inbound message.
type Reply struct {
	Text     string
	Keyboard Keyboard
}

// Gateway is the persistence contract the flows depend on. The service layer
// implements it; errors are the repository sentinels.
type Gateway interface {
	CreateExpense(ctx context.Context, userID int64, amount float64, category, description string) (*model.Expense, error)
	RecentExpenses(ctx context.Context, userID int64, limit int) ([]model.Expense, error)
	DeleteExpense(ctx context.Context, userID int64, expenseID string) error
}

// Engine drives the add and remove state machines over a session store.
type Engine struct {
	sessions session.Store
	gw       Gateway
}

func NewEngine(sessions session.Store, gw Gateway) *Engine {
	return &Engine{sessions: sessions, gw: gw}
}

// Active reports whether the user has a flow in progress.
func (e *Engine) Active(userID int64) bool {
	_, ok := e.sessions.Get(userID)
	return ok
}

// Cancel aborts any in-progress flow.
func (e *Engine) Cancel(userID int64) Reply {
	if _, ok := e.sessions.Get(userID); !ok {
		return Reply{Text: "Nothing to cancel."}
	}
	e.sessions.Clear(userID)
	return Reply{Text: "Cancelled.", Keyboard: KeyboardRemove}
}

// Handle dispatches one free-text message to the user's current flow state.
func (e *Engine) Handle(ctx context.Context, userID int64, text string) Reply {
	state, ok := e.sessions.Get(userID)
	if !ok {
		return Reply{Text: "Send /add to record an expense or /remove to delete one."}
	}

	switch s := state.(type) {
	case AddAwaitingAmount:
		return e.handleAmount(userID, text)
	case AddAwaitingCategory:
		return e.handleCategory(userID, s, text)
	case AddAwaitingDescription:
		return e.handleDescription(ctx, userID, s, text)
	case RemoveSelecting:
		return e.handleSelection(userID, s, text)
	case RemoveConfirming:
		return e.handleConfirmation(ctx, userID, s, text)
	default:
		// Unknown state can only mean a bug; drop the session.
		log.Errorf("flow: unknown session state %T for user %d", state, userID)
		e.sessions.Clear(userID)
		return Reply{Text: "Something went wrong. Please start over.", Keyboard: KeyboardRemove}
	}
}

// abort clears the session and reports the failure to the user.
func (e *Engine) abort(userID int64, text string) Reply {
	e.sessions.Clear(userID)
	return Reply{Text: "❌ " + text, Keyboard: KeyboardRemove}
}

func formatAmount(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func describeExpense(exp model.Expense) string {
	s := fmt.Sprintf("%s %s", formatAmount(exp.Amount, exp.Currency), exp.Category)
	if exp.Description != "" {
		s += " (" + exp.Description + ")"
	}
	return s
}

func formatCandidates(candidates []model.Expense) string {
	var b strings.Builder
	b.WriteString("Which expense do you want to remove?\n")
	for i, exp := range candidates {
		fmt.Fprintf(&b, "%d. %s, %s\n", i+1, describeExpense(exp), exp.CreatedAt.Format("02.01.2006"))
	}
	fmt.Fprintf(&b, "Send a number from 1 to %d.", len(candidates))
	return b.String()
}
