// Package models defines the core domain models for Splitpay.
//
// The engine works in the smallest currency unit (int64 cents), never
// floats. Balances are signed: a positive share means the member is owed
// money by the group, a negative share means the member owes money, and a
// missing entry is the same as zero.
//
// Expense splits are expressed in basis points (10000 = 100%), so shares
// survive JSON round-trips without precision loss.
//
// Models are persisted as JSON values in the key-value store, hence the
// struct tags. Avoid circular references: relationships use ids, not
// pointers.
package models
