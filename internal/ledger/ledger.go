// Package ledger implements the balance-accounting engine for shared
// expenses.
//
// The engine tracks groups of participants, expenses paid by one member
// and split among others by basis points, a running signed balance per
// member, and settlements that transfer balance between two members.
//
// Every operation follows the same transaction pattern: load the group
// aggregate (and, for expenses, the group's log) from the store in full,
// validate all preconditions before touching anything, mutate in memory,
// and write everything back as one atomic batch. A failed validation
// leaves persisted state untouched.
//
// The engine has no internal concurrency; the host serializes operations.
// It also performs no identity verification: payer, authorizer, and
// settlement identifiers are trusted to have been verified by the caller.
package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/storage"
)

// loadGroup fetches the full group aggregate, converting a miss into
// ErrGroupNotFound.
func loadGroup(ctx context.Context, store storage.Store, groupID int64) (*models.Group, error) {
	group := &models.Group{}
	found, err := store.Get(ctx, storage.GroupKey(groupID), group)
	if err != nil {
		return nil, fmt.Errorf("failed to load group %d: %w", groupID, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrGroupNotFound, groupID)
	}
	if group.MemberShares == nil {
		group.MemberShares = make(map[string]int64)
	}
	return group, nil
}

// loadExpenses fetches a group's expense log. An absent log is an empty
// log.
func loadExpenses(ctx context.Context, store storage.Store, groupID int64) ([]models.Expense, error) {
	var expenses []models.Expense
	if _, err := store.Get(ctx, storage.GroupExpensesKey(groupID), &expenses); err != nil {
		return nil, fmt.Errorf("failed to load expenses for group %d: %w", groupID, err)
	}
	return expenses, nil
}
