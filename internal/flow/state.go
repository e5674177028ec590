package flow

import "github.com/ivanoskov/spending_bot/internal/model"

// Flow states. Each state is its own type and carries exactly the input that
// has been validated so far, so a later step can never read a field that was
// not collected.

// AddAwaitingAmount waits for the expense amount.
type AddAwaitingAmount struct{}

// AddAwaitingCategory waits for a category; the amount is already parsed.
type AddAwaitingCategory struct {
	Amount float64
}

// AddAwaitingDescription waits for an optional description.
type AddAwaitingDescription struct {
	Amount   float64
	Category string
}

// RemoveSelecting waits for a 1-based pick from the candidate list.
type RemoveSelecting struct {
	Candidates []model.Expense
}

// RemoveConfirming waits for a yes/no on the selected expense.
type RemoveConfirming struct {
	Selected model.Expense
}

func (AddAwaitingAmount) SessionState()      {}
func (AddAwaitingCategory) SessionState()    {}
func (AddAwaitingDescription) SessionState() {}
func (RemoveSelecting) SessionState()        {}
func (RemoveConfirming) SessionState()       {}
