package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/splitpay/internal/storage"
)

// Settler transfers balance between two members of a group, representing
// a real-world payment outside the ledger.
type Settler struct {
	store storage.Store
}

// NewSettler creates a Settler on the given store.
func NewSettler(store storage.Store) *Settler {
	return &Settler{store: store}
}

// SettleDebt moves amount from the debtor's balance to the creditor's:
// from gains amount, to loses amount. The sum of the two balances is
// unchanged.
//
// Validation order: ErrGroupNotFound, ErrNotAMember (from, then to),
// ErrInvalidAmount, ErrNoDebt (from's balance must be negative),
// ErrOverSettlement (amount must not exceed what from owes).
//
// The receiver's balance is not checked: settling toward a member who is
// not actually owed money pushes their balance negative. Preserved from
// the source behavior.
func (s *Settler) SettleDebt(ctx context.Context, groupID int64, from, to string, amount int64) error {
	group, err := loadGroup(ctx, s.store, groupID)
	if err != nil {
		return err
	}
	if !group.HasMember(from) {
		return fmt.Errorf("%w: %s", ErrNotAMember, from)
	}
	if !group.HasMember(to) {
		return fmt.Errorf("%w: %s", ErrNotAMember, to)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	fromBalance := group.Balance(from)
	if fromBalance >= 0 {
		return fmt.Errorf("%w: %s", ErrNoDebt, from)
	}
	if amount > -fromBalance {
		return fmt.Errorf("%w: owes %d, tried to settle %d", ErrOverSettlement, -fromBalance, amount)
	}

	group.MemberShares[from] = fromBalance + amount
	group.MemberShares[to] = group.Balance(to) - amount

	if err := s.store.Set(ctx, storage.GroupKey(groupID), group); err != nil {
		return fmt.Errorf("failed to store settlement: %w", err)
	}
	return nil
}
