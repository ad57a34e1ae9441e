package ledger

import (
	"context"
	"fmt"
	"maps"

	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/storage"
)

// Query provides read-only accessors over groups and their logs.
type Query struct {
	store storage.Store
}

// NewQuery creates a Query on the given store.
func NewQuery(store storage.Store) *Query {
	return &Query{store: store}
}

// MemberBalance returns the member's signed balance: positive = owed by
// the group, negative = owes. A member with no recorded entry has balance
// zero. Fails with ErrGroupNotFound or ErrNotAMember.
func (q *Query) MemberBalance(ctx context.Context, groupID int64, member string) (int64, error) {
	group, err := loadGroup(ctx, q.store, groupID)
	if err != nil {
		return 0, err
	}
	if !group.HasMember(member) {
		return 0, fmt.Errorf("%w: %s", ErrNotAMember, member)
	}
	return group.Balance(member), nil
}

// GroupExpenses returns the group's expense log in append order, empty if
// nothing has been recorded. Fails with ErrGroupNotFound.
func (q *Query) GroupExpenses(ctx context.Context, groupID int64) ([]models.Expense, error) {
	if _, err := loadGroup(ctx, q.store, groupID); err != nil {
		return nil, err
	}
	return loadExpenses(ctx, q.store, groupID)
}

// GroupSummary is a one-shot read of a group's accounting state.
type GroupSummary struct {
	Members     []string
	TotalAmount int64
	Balances    map[string]int64
}

// Summary returns the member list, the running expense total, and every
// recorded balance. Fails with ErrGroupNotFound.
func (q *Query) Summary(ctx context.Context, groupID int64) (*GroupSummary, error) {
	group, err := loadGroup(ctx, q.store, groupID)
	if err != nil {
		return nil, err
	}
	return &GroupSummary{
		Members:     group.Members,
		TotalAmount: group.TotalAmount,
		Balances:    maps.Clone(group.MemberShares),
	}, nil
}
