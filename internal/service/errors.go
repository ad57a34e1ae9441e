package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/splitpay/internal/ledger"
)

// ledgerError maps the engine's sentinel errors onto Connect codes so
// callers can distinguish every named failure condition.
func ledgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrGroupNotFound),
		errors.Is(err, ledger.ErrExpenseIndexOutOfRange):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrEmptyMembers),
		errors.Is(err, ledger.ErrDuplicateMember),
		errors.Is(err, ledger.ErrNotAMember),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrSplitMismatch):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrNonZeroBalance),
		errors.Is(err, ledger.ErrNoDebt),
		errors.Is(err, ledger.ErrOverSettlement):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, ledger.ErrNotOriginalPayer):
		return connect.NewError(connect.CodePermissionDenied, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
