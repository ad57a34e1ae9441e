package models

// TotalShareBps is the required sum of split shares for an expense:
// 10000 basis points = 100%.
const TotalShareBps = 10000

// SplitShare assigns one member their portion of an expense, in basis
// points.
type SplitShare struct {
	Member   string `json:"member"`
	ShareBps int64  `json:"share_bps"`
}

// Expense is one entry in a group's append-ordered expense log. Expenses
// are addressed by their index in the log; removing an entry shifts later
// indices down by one.
type Expense struct {
	// Payer is the member who paid. Must be a group member at creation
	// time, and is the only identity allowed to remove the expense.
	Payer string `json:"payer"`

	// Amount is the full expense amount in the smallest currency unit.
	// Always positive.
	Amount int64 `json:"amount"`

	// Description is a short label, opaque to the engine.
	Description string `json:"description"`

	// SplitInfo is the ordered list of (member, share) pairs. Shares sum
	// to exactly TotalShareBps.
	SplitInfo []SplitShare `json:"split_info"`

	// Timestamp is the creation time in Unix seconds, supplied by the
	// clock collaborator.
	Timestamp int64 `json:"timestamp"`
}

// MemberShare returns the absolute portion of the expense amount carried
// by a split entry: floor(amount * share / 10000). Division truncates, so
// a single expense's deltas may leave at most one unit of rounding
// residue per split entry. Removal re-runs the same math, which makes an
// add/remove pair exact.
func (e *Expense) MemberShare(share SplitShare) int64 {
	return e.Amount * share.ShareBps / TotalShareBps
}
