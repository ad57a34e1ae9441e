// Package service exposes the ledger engine over Connect RPC.
//
// The API speaks hand-written message structs with a JSON codec instead
// of protoc-generated bindings; the handler and client constructors in
// rpc.go keep the shape generated code would have.
package service

import "github.com/mmynk/splitpay/internal/models"

// User is the public view of an account (no credential material).
type User struct {
	Id          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type CreateGroupRequest struct {
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	GroupId int64 `json:"group_id"`
}

type AddMemberRequest struct {
	GroupId int64  `json:"group_id"`
	Member  string `json:"member"`
}

type AddMemberResponse struct{}

type RemoveMemberRequest struct {
	GroupId int64  `json:"group_id"`
	Member  string `json:"member"`
}

type RemoveMemberResponse struct{}

type GetGroupMembersRequest struct {
	GroupId int64 `json:"group_id"`
}

type GetGroupMembersResponse struct {
	Members []string `json:"members"`
}

// GetMemberGroupsRequest asks for the groups a member belongs to. An
// empty Member means the authenticated caller.
type GetMemberGroupsRequest struct {
	Member string `json:"member,omitempty"`
}

type GetMemberGroupsResponse struct {
	GroupIds []int64 `json:"group_ids"`
}

// AddExpenseRequest records an expense paid by the caller. Payer is
// optional; when set it must match the authenticated caller.
type AddExpenseRequest struct {
	GroupId     int64               `json:"group_id"`
	Payer       string              `json:"payer,omitempty"`
	Amount      int64               `json:"amount"`
	Description string              `json:"description"`
	Split       []models.SplitShare `json:"split"`
}

type AddExpenseResponse struct {
	ExpenseIndex int `json:"expense_index"`
}

type RemoveExpenseRequest struct {
	GroupId      int64 `json:"group_id"`
	ExpenseIndex int   `json:"expense_index"`
}

type RemoveExpenseResponse struct{}

// SettleDebtRequest settles part of the caller's debt toward To. From is
// optional; when set it must match the authenticated caller.
type SettleDebtRequest struct {
	GroupId int64  `json:"group_id"`
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Amount  int64  `json:"amount"`
}

type SettleDebtResponse struct{}

// GetMemberBalanceRequest reads a member's balance. An empty Member means
// the authenticated caller.
type GetMemberBalanceRequest struct {
	GroupId int64  `json:"group_id"`
	Member  string `json:"member,omitempty"`
}

type GetMemberBalanceResponse struct {
	Balance int64 `json:"balance"`
}

type GetGroupExpensesRequest struct {
	GroupId int64 `json:"group_id"`
}

type GetGroupExpensesResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

type GetGroupSummaryRequest struct {
	GroupId int64 `json:"group_id"`
}

type GetGroupSummaryResponse struct {
	Members     []string         `json:"members"`
	TotalAmount int64            `json:"total_amount"`
	Balances    map[string]int64 `json:"balances"`
}
