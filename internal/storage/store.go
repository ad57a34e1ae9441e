// Package storage provides the persistent key-value facility the ledger
// engine runs on.
//
// The engine's state lives under a handful of logical key families
// (group counter, group record, per-member group index, per-group expense
// log, plus user records for the host's auth layer). Key models those
// families as a tagged union with one constructor each, rendered into
// disjoint string namespaces so families can never collide in the
// underlying store.
package storage

import (
	"context"
	"fmt"
)

type keyKind int

const (
	kindCounter keyKind = iota
	kindGroup
	kindMemberGroups
	kindGroupExpenses
	kindUser
	kindUserEmail
)

// Key identifies one stored value. Construct keys only through the
// functions below; the zero Key is not valid.
type Key struct {
	kind    keyKind
	groupID int64
	id      string
}

// CounterKey addresses the last-issued group id.
func CounterKey() Key { return Key{kind: kindCounter} }

// GroupKey addresses a group record.
func GroupKey(groupID int64) Key { return Key{kind: kindGroup, groupID: groupID} }

// MemberGroupsKey addresses the ordered list of group ids a member
// belongs to.
func MemberGroupsKey(member string) Key { return Key{kind: kindMemberGroups, id: member} }

// GroupExpensesKey addresses a group's append-ordered expense log.
func GroupExpensesKey(groupID int64) Key { return Key{kind: kindGroupExpenses, groupID: groupID} }

// UserKey addresses a user record by id.
func UserKey(userID string) Key { return Key{kind: kindUser, id: userID} }

// UserEmailKey addresses the email -> user id index entry.
func UserEmailKey(email string) Key { return Key{kind: kindUserEmail, id: email} }

// String renders the key into its storage namespace.
func (k Key) String() string {
	switch k.kind {
	case kindCounter:
		return "counter/group"
	case kindGroup:
		return fmt.Sprintf("group/%d", k.groupID)
	case kindMemberGroups:
		return fmt.Sprintf("member/%s/groups", k.id)
	case kindGroupExpenses:
		return fmt.Sprintf("group/%d/expenses", k.groupID)
	case kindUser:
		return fmt.Sprintf("user/%s", k.id)
	case kindUserEmail:
		return fmt.Sprintf("email/%s", k.id)
	}
	return fmt.Sprintf("invalid/%d", k.kind)
}

// Put pairs a key with the value to write under it.
type Put struct {
	Key   Key
	Value any
}

// Store is the persistent key-value collaborator. Values are encoded as
// JSON; Get decodes into out and reports whether the key existed, so a
// miss is an explicit result rather than an error.
//
// The engine assumes single-writer semantics: the host serializes
// operations, the store only has to make each write batch atomic.
type Store interface {
	// Has reports whether a value exists under key.
	Has(ctx context.Context, key Key) (bool, error)

	// Get decodes the value under key into out. The bool is false (and
	// out untouched) when the key is absent.
	Get(ctx context.Context, key Key, out any) (bool, error)

	// Set writes a single value under key.
	Set(ctx context.Context, key Key, value any) error

	// Apply writes all puts as one atomic batch. Either every put is
	// visible to the next operation or none is.
	Apply(ctx context.Context, puts ...Put) error

	// AllocateGroupID atomically increments the group counter and
	// returns the new id. Ids start at 1 and are never reused, even if
	// the operation that requested the id later fails.
	AllocateGroupID(ctx context.Context) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
