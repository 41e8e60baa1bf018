package services

import (
	"context"

	"github.com/finvault/fin_statements_app/internal/core/domain"
	"github.com/finvault/fin_statements_app/internal/dto"
	"github.com/shopspring/decimal"
)

// StatementWriterSvc defines operations that create ledger entries.
type StatementWriterSvc interface {
	// CreateStatement validates and persists one monetary operation for the
	// acting user. For a transfer it persists an atomic mirrored pair of
	// entries and returns the actor's (debit) side.
	//
	// Domain outcomes: domain.ErrUserNotFound, domain.ErrInsufficientFunds,
	// domain.ErrSelfTransfer.
	CreateStatement(ctx context.Context, actorUserID string, req dto.CreateStatementRequest) (*domain.Statement, error)
}

// StatementReaderSvc defines balance and history queries.
type StatementReaderSvc interface {
	// GetBalance returns the user's current balance together with their full
	// statement history in storage order.
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, []domain.Statement, error)

	// GetStatementOperation returns a single statement belonging to the user.
	// Domain outcomes: domain.ErrUserNotFound, domain.ErrStatementNotFound.
	GetStatementOperation(ctx context.Context, userID, statementID string) (*domain.Statement, error)
}

// StatementSvcFacade combines all statement-related service interfaces
type StatementSvcFacade interface {
	StatementWriterSvc
	StatementReaderSvc
}
