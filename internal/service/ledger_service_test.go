package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/splitpay/internal/models"
)

// newGroup creates a group of alice and bob and returns its id.
func newGroup(t *testing.T, groupClient *GroupServiceClient, members ...string) int64 {
	t.Helper()

	resp, err := groupClient.CreateGroup(context.Background(), asUser(connect.NewRequest(&CreateGroupRequest{
		Members: members,
	}), members[0]))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.GroupId
}

func TestExpenseSettlementFlow(t *testing.T) {
	groupClient, ledgerClient := setupTestServer(t)
	ctx := context.Background()
	groupID := newGroup(t, groupClient, "alice", "bob")

	// alice pays 100, split evenly.
	added, err := ledgerClient.AddExpense(ctx, asUser(connect.NewRequest(&AddExpenseRequest{
		GroupId:     groupID,
		Amount:      100,
		Description: "dinner",
		Split: []models.SplitShare{
			{Member: "alice", ShareBps: 5000},
			{Member: "bob", ShareBps: 5000},
		},
	}), "alice"))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if added.Msg.ExpenseIndex != 0 {
		t.Errorf("expense index: expected 0, got %d", added.Msg.ExpenseIndex)
	}

	summary, err := ledgerClient.GetGroupSummary(ctx, connect.NewRequest(&GetGroupSummaryRequest{GroupId: groupID}))
	if err != nil {
		t.Fatalf("GetGroupSummary failed: %v", err)
	}
	if summary.Msg.TotalAmount != 100 {
		t.Errorf("total: expected 100, got %d", summary.Msg.TotalAmount)
	}
	if summary.Msg.Balances["alice"] != 50 || summary.Msg.Balances["bob"] != -50 {
		t.Errorf("unexpected balances: %v", summary.Msg.Balances)
	}

	// bob settles his 50 toward alice.
	_, err = ledgerClient.SettleDebt(ctx, asUser(connect.NewRequest(&SettleDebtRequest{
		GroupId: groupID,
		To:      "alice",
		Amount:  50,
	}), "bob"))
	if err != nil {
		t.Fatalf("SettleDebt failed: %v", err)
	}

	balance, err := ledgerClient.GetMemberBalance(ctx, asUser(connect.NewRequest(&GetMemberBalanceRequest{
		GroupId: groupID,
	}), "bob"))
	if err != nil {
		t.Fatalf("GetMemberBalance failed: %v", err)
	}
	if balance.Msg.Balance != 0 {
		t.Errorf("bob balance: expected 0, got %d", balance.Msg.Balance)
	}

	// Removal stays reserved for the original payer.
	_, err = ledgerClient.RemoveExpense(ctx, asUser(connect.NewRequest(&RemoveExpenseRequest{
		GroupId:      groupID,
		ExpenseIndex: 0,
	}), "bob"))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("expected permission denied for non-payer, got %v", err)
	}

	_, err = ledgerClient.RemoveExpense(ctx, asUser(connect.NewRequest(&RemoveExpenseRequest{
		GroupId:      groupID,
		ExpenseIndex: 0,
	}), "alice"))
	if err != nil {
		t.Fatalf("RemoveExpense failed: %v", err)
	}

	expenses, err := ledgerClient.GetGroupExpenses(ctx, connect.NewRequest(&GetGroupExpensesRequest{GroupId: groupID}))
	if err != nil {
		t.Fatalf("GetGroupExpenses failed: %v", err)
	}
	if len(expenses.Msg.Expenses) != 0 {
		t.Errorf("expected empty log, got %d expenses", len(expenses.Msg.Expenses))
	}
}

func TestAddExpensePayerMustBeCaller(t *testing.T) {
	groupClient, ledgerClient := setupTestServer(t)
	groupID := newGroup(t, groupClient, "alice", "bob")

	_, err := ledgerClient.AddExpense(context.Background(), asUser(connect.NewRequest(&AddExpenseRequest{
		GroupId: groupID,
		Payer:   "bob",
		Amount:  100,
		Split: []models.SplitShare{
			{Member: "alice", ShareBps: 5000},
			{Member: "bob", ShareBps: 5000},
		},
	}), "alice"))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("expected permission denied, got %v", err)
	}
}

func TestAddExpenseErrorCodes(t *testing.T) {
	groupClient, ledgerClient := setupTestServer(t)
	ctx := context.Background()
	groupID := newGroup(t, groupClient, "alice", "bob")

	tests := []struct {
		name     string
		req      *AddExpenseRequest
		caller   string
		wantCode connect.Code
	}{
		{
			name: "unknown group",
			req: &AddExpenseRequest{
				GroupId: 999,
				Amount:  100,
				Split:   []models.SplitShare{{Member: "alice", ShareBps: 10000}},
			},
			caller:   "alice",
			wantCode: connect.CodeNotFound,
		},
		{
			name: "payer not a member",
			req: &AddExpenseRequest{
				GroupId: groupID,
				Amount:  100,
				Split:   []models.SplitShare{{Member: "alice", ShareBps: 10000}},
			},
			caller:   "mallory",
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name: "split does not reach 10000",
			req: &AddExpenseRequest{
				GroupId: groupID,
				Amount:  100,
				Split: []models.SplitShare{
					{Member: "alice", ShareBps: 4000},
					{Member: "bob", ShareBps: 4000},
					{Member: "alice", ShareBps: 1999},
				},
			},
			caller:   "alice",
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name: "non-positive amount",
			req: &AddExpenseRequest{
				GroupId: groupID,
				Amount:  0,
				Split:   []models.SplitShare{{Member: "alice", ShareBps: 10000}},
			},
			caller:   "alice",
			wantCode: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledgerClient.AddExpense(ctx, asUser(connect.NewRequest(tt.req), tt.caller))
			if connect.CodeOf(err) != tt.wantCode {
				t.Errorf("expected %v, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestSettleDebtErrorCodes(t *testing.T) {
	groupClient, ledgerClient := setupTestServer(t)
	ctx := context.Background()
	groupID := newGroup(t, groupClient, "alice", "bob")

	// Nothing owed yet: settling is a failed precondition.
	_, err := ledgerClient.SettleDebt(ctx, asUser(connect.NewRequest(&SettleDebtRequest{
		GroupId: groupID,
		To:      "alice",
		Amount:  10,
	}), "bob"))
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("expected failed precondition for no debt, got %v", err)
	}

	_, err = ledgerClient.AddExpense(ctx, asUser(connect.NewRequest(&AddExpenseRequest{
		GroupId: groupID,
		Amount:  100,
		Split: []models.SplitShare{
			{Member: "alice", ShareBps: 5000},
			{Member: "bob", ShareBps: 5000},
		},
	}), "alice"))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	// Over-settlement.
	_, err = ledgerClient.SettleDebt(ctx, asUser(connect.NewRequest(&SettleDebtRequest{
		GroupId: groupID,
		To:      "alice",
		Amount:  51,
	}), "bob"))
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("expected failed precondition for over-settlement, got %v", err)
	}

	// Settling on someone else's behalf.
	_, err = ledgerClient.SettleDebt(ctx, asUser(connect.NewRequest(&SettleDebtRequest{
		GroupId: groupID,
		From:    "bob",
		To:      "alice",
		Amount:  50,
	}), "alice"))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("expected permission denied, got %v", err)
	}
}

func TestGetGroupExpensesOrderAndTimestamps(t *testing.T) {
	groupClient, ledgerClient := setupTestServer(t)
	ctx := context.Background()
	groupID := newGroup(t, groupClient, "alice", "bob")

	for _, desc := range []string{"coffee", "lunch"} {
		_, err := ledgerClient.AddExpense(ctx, asUser(connect.NewRequest(&AddExpenseRequest{
			GroupId:     groupID,
			Amount:      10,
			Description: desc,
			Split: []models.SplitShare{
				{Member: "alice", ShareBps: 5000},
				{Member: "bob", ShareBps: 5000},
			},
		}), "alice"))
		if err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
	}

	resp, err := ledgerClient.GetGroupExpenses(ctx, connect.NewRequest(&GetGroupExpensesRequest{GroupId: groupID}))
	if err != nil {
		t.Fatalf("GetGroupExpenses failed: %v", err)
	}
	if len(resp.Msg.Expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(resp.Msg.Expenses))
	}
	if resp.Msg.Expenses[0].Description != "coffee" || resp.Msg.Expenses[1].Description != "lunch" {
		t.Errorf("unexpected order: %+v", resp.Msg.Expenses)
	}
	for i, e := range resp.Msg.Expenses {
		if e.Timestamp == 0 {
			t.Errorf("expense %d has zero timestamp", i)
		}
	}
}
