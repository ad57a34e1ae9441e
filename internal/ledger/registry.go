package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/storage"
)

// Registry owns group creation and membership changes.
type Registry struct {
	store storage.Store
}

// NewRegistry creates a Registry on the given store.
func NewRegistry(store storage.Store) *Registry {
	return &Registry{store: store}
}

// CreateGroup allocates the next sequential group id and stores a fresh
// group with zero balances for every member, plus a reverse index entry
// (member -> group ids, in order of addition) for each member. Returns
// the new group id.
//
// Fails with ErrEmptyMembers for an empty member list and
// ErrDuplicateMember if the same identifier appears twice.
func (r *Registry) CreateGroup(ctx context.Context, members []string) (int64, error) {
	if len(members) == 0 {
		return 0, ErrEmptyMembers
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if seen[m] {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateMember, m)
		}
		seen[m] = true
	}

	groupID, err := r.store.AllocateGroupID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate group id: %w", err)
	}

	group := &models.Group{
		ID:           groupID,
		Members:      slices.Clone(members),
		MemberShares: make(map[string]int64),
	}

	puts := []storage.Put{{Key: storage.GroupKey(groupID), Value: group}}
	for _, m := range members {
		memberGroups, err := r.memberGroups(ctx, m)
		if err != nil {
			return 0, err
		}
		puts = append(puts, storage.Put{
			Key:   storage.MemberGroupsKey(m),
			Value: append(memberGroups, groupID),
		})
	}

	if err := r.store.Apply(ctx, puts...); err != nil {
		return 0, fmt.Errorf("failed to store group: %w", err)
	}
	return groupID, nil
}

// AddMember appends a member to the group (balance implicitly zero) and
// updates the member's reverse index. Fails with ErrGroupNotFound or
// ErrDuplicateMember.
func (r *Registry) AddMember(ctx context.Context, groupID int64, newMember string) error {
	group, err := loadGroup(ctx, r.store, groupID)
	if err != nil {
		return err
	}
	if group.HasMember(newMember) {
		return fmt.Errorf("%w: %s", ErrDuplicateMember, newMember)
	}

	group.Members = append(group.Members, newMember)

	memberGroups, err := r.memberGroups(ctx, newMember)
	if err != nil {
		return err
	}

	return r.store.Apply(ctx,
		storage.Put{Key: storage.GroupKey(groupID), Value: group},
		storage.Put{Key: storage.MemberGroupsKey(newMember), Value: append(memberGroups, groupID)},
	)
}

// RemoveMember removes a member from the group, preserving the relative
// order of the remaining members, and drops the group from the member's
// reverse index. Fails with ErrGroupNotFound, ErrNotAMember, or
// ErrNonZeroBalance (a member can only leave settled up).
//
// Removing the last member is allowed: the emptied group keeps existing
// under its id.
func (r *Registry) RemoveMember(ctx context.Context, groupID int64, member string) error {
	group, err := loadGroup(ctx, r.store, groupID)
	if err != nil {
		return err
	}
	idx := slices.Index(group.Members, member)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotAMember, member)
	}
	if group.Balance(member) != 0 {
		return fmt.Errorf("%w: %s", ErrNonZeroBalance, member)
	}

	group.Members = slices.Delete(group.Members, idx, idx+1)
	delete(group.MemberShares, member)

	memberGroups, err := r.memberGroups(ctx, member)
	if err != nil {
		return err
	}
	if i := slices.Index(memberGroups, groupID); i >= 0 {
		memberGroups = slices.Delete(memberGroups, i, i+1)
	}

	return r.store.Apply(ctx,
		storage.Put{Key: storage.GroupKey(groupID), Value: group},
		storage.Put{Key: storage.MemberGroupsKey(member), Value: memberGroups},
	)
}

// GroupMembers returns the group's ordered member list. Fails with
// ErrGroupNotFound.
func (r *Registry) GroupMembers(ctx context.Context, groupID int64) ([]string, error) {
	group, err := loadGroup(ctx, r.store, groupID)
	if err != nil {
		return nil, err
	}
	return group.Members, nil
}

// MemberGroups returns the ordered list of group ids the member belongs
// to. A member with no groups gets an empty list, not an error.
func (r *Registry) MemberGroups(ctx context.Context, member string) ([]int64, error) {
	return r.memberGroups(ctx, member)
}

func (r *Registry) memberGroups(ctx context.Context, member string) ([]int64, error) {
	var groups []int64
	if _, err := r.store.Get(ctx, storage.MemberGroupsKey(member), &groups); err != nil {
		return nil, fmt.Errorf("failed to load groups for member %s: %w", member, err)
	}
	return groups, nil
}
