package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/storage"
)

// Ledger owns the expense log and the balance deltas expenses cause.
type Ledger struct {
	store storage.Store
	clock Clock
}

// NewLedger creates a Ledger on the given store and clock.
func NewLedger(store storage.Store, clock Clock) *Ledger {
	return &Ledger{store: store, clock: clock}
}

// AddExpense appends an expense to the group's log and applies its
// balance deltas. Returns the expense's index in the log (the log length
// before the append).
//
// Validation order, each its own failure: ErrGroupNotFound, ErrNotAMember
// (payer), ErrInvalidAmount, ErrNotAMember (any split member),
// ErrSplitMismatch (shares must sum to 10000 bps).
//
// For each split entry the member's portion is
// floor(amount * share / 10000). The payer is credited
// amount - own_portion (what the others owe them); every other member is
// debited their portion. Truncation can leave the deltas of one expense
// summing to slightly less than zero; that residue is accepted, not
// redistributed.
//
// Split entries are not deduplicated: a member listed twice gets both
// deltas applied.
func (l *Ledger) AddExpense(ctx context.Context, groupID int64, payer string, amount int64, description string, split []models.SplitShare) (int, error) {
	group, err := loadGroup(ctx, l.store, groupID)
	if err != nil {
		return 0, err
	}
	if !group.HasMember(payer) {
		return 0, fmt.Errorf("%w: payer %s", ErrNotAMember, payer)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	var totalBps int64
	for _, share := range split {
		if !group.HasMember(share.Member) {
			return 0, fmt.Errorf("%w: split member %s", ErrNotAMember, share.Member)
		}
		totalBps += share.ShareBps
	}
	if totalBps != models.TotalShareBps {
		return 0, fmt.Errorf("%w: got %d bps", ErrSplitMismatch, totalBps)
	}

	expenses, err := loadExpenses(ctx, l.store, groupID)
	if err != nil {
		return 0, err
	}

	expense := models.Expense{
		Payer:       payer,
		Amount:      amount,
		Description: description,
		SplitInfo:   slices.Clone(split),
		Timestamp:   l.clock.Now(),
	}
	index := len(expenses)
	expenses = append(expenses, expense)

	for _, share := range expense.SplitInfo {
		portion := expense.MemberShare(share)
		if share.Member == payer {
			group.MemberShares[share.Member] += amount - portion
		} else {
			group.MemberShares[share.Member] -= portion
		}
	}
	group.TotalAmount += amount

	err = l.store.Apply(ctx,
		storage.Put{Key: storage.GroupKey(groupID), Value: group},
		storage.Put{Key: storage.GroupExpensesKey(groupID), Value: expenses},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to store expense: %w", err)
	}
	return index, nil
}

// RemoveExpense deletes the expense at expenseIndex and reverses its
// balance deltas. Later entries shift down one position, so indices
// handed out earlier for those entries are invalidated.
//
// Fails with ErrGroupNotFound, ErrExpenseIndexOutOfRange, or
// ErrNotOriginalPayer (authorizedBy must be the expense's payer).
//
// The inverse deltas are recomputed from the stored amount and split, with
// the same truncating division as the original application, so an
// add/remove pair restores every balance and the group total exactly.
func (l *Ledger) RemoveExpense(ctx context.Context, groupID int64, expenseIndex int, authorizedBy string) error {
	group, err := loadGroup(ctx, l.store, groupID)
	if err != nil {
		return err
	}
	expenses, err := loadExpenses(ctx, l.store, groupID)
	if err != nil {
		return err
	}
	if expenseIndex < 0 || expenseIndex >= len(expenses) {
		return fmt.Errorf("%w: %d", ErrExpenseIndexOutOfRange, expenseIndex)
	}
	expense := expenses[expenseIndex]
	if expense.Payer != authorizedBy {
		return fmt.Errorf("%w: %s", ErrNotOriginalPayer, authorizedBy)
	}

	for _, share := range expense.SplitInfo {
		portion := expense.MemberShare(share)
		if share.Member == expense.Payer {
			group.MemberShares[share.Member] -= expense.Amount - portion
		} else {
			group.MemberShares[share.Member] += portion
		}
	}
	group.TotalAmount -= expense.Amount

	expenses = slices.Delete(expenses, expenseIndex, expenseIndex+1)

	err = l.store.Apply(ctx,
		storage.Put{Key: storage.GroupKey(groupID), Value: group},
		storage.Put{Key: storage.GroupExpensesKey(groupID), Value: expenses},
	)
	if err != nil {
		return fmt.Errorf("failed to remove expense: %w", err)
	}
	return nil
}
