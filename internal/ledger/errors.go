package ledger

import "errors"

// Every failure the engine can produce is one of these sentinels, usually
// wrapped with the offending id. Callers dispatch with errors.Is; no
// operation ever reports a generic fault for a known condition.
var (
	// ErrGroupNotFound: the group id is unknown.
	ErrGroupNotFound = errors.New("group not found")

	// ErrEmptyMembers: create_group was called with no members.
	ErrEmptyMembers = errors.New("group must have at least one member")

	// ErrDuplicateMember: the member is already in the group.
	ErrDuplicateMember = errors.New("member already exists in group")

	// ErrNotAMember: the identifier is not in the group's member list.
	ErrNotAMember = errors.New("not a group member")

	// ErrNonZeroBalance: a member can only be removed at balance zero.
	ErrNonZeroBalance = errors.New("member has non-zero balance")

	// ErrInvalidAmount: amounts must be strictly positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrSplitMismatch: split shares must sum to exactly 10000 bps.
	ErrSplitMismatch = errors.New("split shares must total 100%")

	// ErrExpenseIndexOutOfRange: the index is past the end of the log.
	ErrExpenseIndexOutOfRange = errors.New("invalid expense index")

	// ErrNotOriginalPayer: only the payer may remove an expense.
	ErrNotOriginalPayer = errors.New("only the original payer can remove an expense")

	// ErrNoDebt: the settling member's balance is not negative.
	ErrNoDebt = errors.New("member does not owe any money")

	// ErrOverSettlement: the amount exceeds what the member owes.
	ErrOverSettlement = errors.New("cannot settle more than what is owed")
)
