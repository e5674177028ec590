package flow

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/gommon/log"

	"github.com/ivanoskov/spending_bot/internal/repository"
)

// StartRemove begins the remove-expense flow by offering the user's most
// recent expenses. With nothing to offer, the flow finishes immediately and
// no session is created.
func (e *Engine) StartRemove(ctx context.Context, userID int64) Reply {
	candidates, err := e.gw.RecentExpenses(ctx, userID, RecentLimit)
	if err != nil {
		log.Errorf("flow: list recent expenses for user %d: %v", userID, err)
		return Reply{Text: "❌ Could not load your expenses. Please try /remove again."}
	}
	if len(candidates) == 0 {
		return Reply{Text: "You have no expenses to remove."}
	}

	e.sessions.Set(userID, RemoveSelecting{Candidates: candidates})
	return Reply{Text: formatCandidates(candidates), Keyboard: KeyboardRemove}
}

func (e *Engine) handleSelection(userID int64, s RemoveSelecting, text string) Reply {
	idx, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || idx < 1 || idx > len(s.Candidates) {
		return Reply{Text: "Please send a number from 1 to " + strconv.Itoa(len(s.Candidates)) + "."}
	}

	selected := s.Candidates[idx-1]
	e.sessions.Set(userID, RemoveConfirming{Selected: selected})
	return Reply{
		Text:     "Remove " + describeExpense(selected) + "? (yes/no)",
		Keyboard: KeyboardConfirm,
	}
}

func (e *Engine) handleConfirmation(ctx context.Context, userID int64, s RemoveConfirming, text string) Reply {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "no":
		e.sessions.Clear(userID)
		return Reply{Text: "Cancelled. Nothing was removed.", Keyboard: KeyboardRemove}
	case "yes":
		err := e.gw.DeleteExpense(ctx, userID, s.Selected.ID)
		switch {
		case errors.Is(err, repository.ErrExpenseNotFound):
			// Deleted concurrently, or never ours. Not fatal.
			e.sessions.Clear(userID)
			return Reply{Text: "That expense no longer exists.", Keyboard: KeyboardRemove}
		case err != nil:
			log.Errorf("flow: delete expense %s for user %d: %v", s.Selected.ID, userID, err)
			return e.abort(userID, "Could not remove the expense. Please try /remove again.")
		}
		e.sessions.Clear(userID)
		return Reply{Text: "✅ Removed: " + describeExpense(s.Selected), Keyboard: KeyboardRemove}
	default:
		return Reply{Text: "Please answer yes or no.", Keyboard: KeyboardConfirm}
	}
}
