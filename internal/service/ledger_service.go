package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitpay/internal/ledger"
	"github.com/mmynk/splitpay/internal/middleware"
)

// LedgerService exposes expenses, settlements, and balance reads over
// Connect. The authenticated caller is the verified identity for every
// mutation: they are the payer of a new expense, the authorizer of a
// removal, and the debtor of a settlement.
type LedgerService struct {
	ledger  *ledger.Ledger
	settler *ledger.Settler
	query   *ledger.Query
}

// NewLedgerService creates a LedgerService over the given engine parts.
func NewLedgerService(l *ledger.Ledger, settler *ledger.Settler, query *ledger.Query) *LedgerService {
	return &LedgerService{ledger: l, settler: settler, query: query}
}

// caller returns the authenticated user id or an unauthenticated error.
func caller(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	return userID, nil
}

// AddExpense records an expense paid by the caller and returns its index
// in the group's log.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Payer != "" && req.Msg.Payer != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("payer must be the authenticated caller"))
	}

	index, err := s.ledger.AddExpense(ctx, req.Msg.GroupId, userID, req.Msg.Amount, req.Msg.Description, req.Msg.Split)
	if err != nil {
		slog.Error("AddExpense failed", "group_id", req.Msg.GroupId, "payer", userID, "error", err)
		return nil, ledgerError(err)
	}

	slog.Info("Expense added",
		"group_id", req.Msg.GroupId,
		"payer", userID,
		"amount", req.Msg.Amount,
		"expense_index", index,
	)
	return connect.NewResponse(&AddExpenseResponse{ExpenseIndex: index}), nil
}

// RemoveExpense deletes an expense; only the original payer may do so.
func (s *LedgerService) RemoveExpense(ctx context.Context, req *connect.Request[RemoveExpenseRequest]) (*connect.Response[RemoveExpenseResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.RemoveExpense(ctx, req.Msg.GroupId, req.Msg.ExpenseIndex, userID); err != nil {
		slog.Error("RemoveExpense failed",
			"group_id", req.Msg.GroupId,
			"expense_index", req.Msg.ExpenseIndex,
			"user_id", userID,
			"error", err,
		)
		return nil, ledgerError(err)
	}

	slog.Info("Expense removed", "group_id", req.Msg.GroupId, "expense_index", req.Msg.ExpenseIndex)
	return connect.NewResponse(&RemoveExpenseResponse{}), nil
}

// SettleDebt settles part of the caller's debt toward another member.
func (s *LedgerService) SettleDebt(ctx context.Context, req *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.From != "" && req.Msg.From != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("from must be the authenticated caller"))
	}

	if err := s.settler.SettleDebt(ctx, req.Msg.GroupId, userID, req.Msg.To, req.Msg.Amount); err != nil {
		slog.Error("SettleDebt failed",
			"group_id", req.Msg.GroupId,
			"from", userID,
			"to", req.Msg.To,
			"error", err,
		)
		return nil, ledgerError(err)
	}

	slog.Info("Debt settled",
		"group_id", req.Msg.GroupId,
		"from", userID,
		"to", req.Msg.To,
		"amount", req.Msg.Amount,
	)
	return connect.NewResponse(&SettleDebtResponse{}), nil
}

// GetMemberBalance returns a member's signed balance; with no member in
// the request, the caller's own.
func (s *LedgerService) GetMemberBalance(ctx context.Context, req *connect.Request[GetMemberBalanceRequest]) (*connect.Response[GetMemberBalanceResponse], error) {
	member := req.Msg.Member
	if member == "" {
		member = middleware.GetUserID(ctx)
	}

	balance, err := s.query.MemberBalance(ctx, req.Msg.GroupId, member)
	if err != nil {
		return nil, ledgerError(err)
	}
	return connect.NewResponse(&GetMemberBalanceResponse{Balance: balance}), nil
}

// GetGroupExpenses returns the group's expense log in append order.
func (s *LedgerService) GetGroupExpenses(ctx context.Context, req *connect.Request[GetGroupExpensesRequest]) (*connect.Response[GetGroupExpensesResponse], error) {
	expenses, err := s.query.GroupExpenses(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, ledgerError(err)
	}
	return connect.NewResponse(&GetGroupExpensesResponse{Expenses: expenses}), nil
}

// GetGroupSummary returns the member list, expense total, and balances.
func (s *LedgerService) GetGroupSummary(ctx context.Context, req *connect.Request[GetGroupSummaryRequest]) (*connect.Response[GetGroupSummaryResponse], error) {
	summary, err := s.query.Summary(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, ledgerError(err)
	}
	return connect.NewResponse(&GetGroupSummaryResponse{
		Members:     summary.Members,
		TotalAmount: summary.TotalAmount,
		Balances:    summary.Balances,
	}), nil
}
