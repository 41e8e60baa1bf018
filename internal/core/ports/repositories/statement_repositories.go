package repositories

import (
	"context"

	"github.com/finvault/fin_statements_app/internal/core/domain"
)

// StatementReader defines read operations for statement data
type StatementReader interface {
	// ListStatementsByUser retrieves every statement belonging to a user, in
	// storage order.
	ListStatementsByUser(ctx context.Context, userID string) ([]domain.Statement, error)

	// FindStatementByID retrieves a single statement by ID, scoped to the
	// given user. A statement belonging to a different user is reported as
	// apperrors.ErrNotFound; entries are not visible across accounts.
	FindStatementByID(ctx context.Context, userID, statementID string) (*domain.Statement, error)
}

// StatementWriter defines write operations for statement data.
//
// Both write methods must make the balance-check-then-write sequence race-free
// for the debited user: implementations lock the involved user rows, re-derive
// the balance inside the transaction and fail with domain.ErrInsufficientFunds
// before inserting, so two concurrent withdrawals can never both drain the
// same funds.
type StatementWriter interface {
	// SaveStatement persists a single deposit or withdrawal entry.
	SaveStatement(ctx context.Context, st domain.Statement) error

	// SaveTransferPair persists the two sides of a transfer as one atomic
	// unit: either both rows are durably written or neither is.
	SaveTransferPair(ctx context.Context, debit domain.Statement, credit domain.Statement) error
}

// StatementRepositoryFacade combines all statement-related repository interfaces.
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
}
