package models

// Group is the aggregate the engine operates on. It is always loaded in
// full, mutated in memory, and written back in full.
type Group struct {
	// ID is the sequential group id, assigned by the store's counter.
	// Ids start at 1 and are never reused.
	ID int64 `json:"id"`

	// Members is the ordered list of participant identifiers. No
	// duplicates; removal preserves the relative order of the rest.
	Members []string `json:"members"`

	// TotalAmount is the sum of the amounts of all expenses currently in
	// the group's log, in the smallest currency unit.
	TotalAmount int64 `json:"total_amount"`

	// MemberShares maps a member to their signed balance. Positive = owed
	// by the group, negative = owes the group. A missing entry is zero.
	MemberShares map[string]int64 `json:"member_shares"`
}

// HasMember reports whether id is in the group's member list.
func (g *Group) HasMember(id string) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}

// Balance returns the member's signed balance, zero if no entry exists.
func (g *Group) Balance(member string) int64 {
	return g.MemberShares[member]
}
