package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finvault/fin_statements_app/internal/apperrors"
	"github.com/finvault/fin_statements_app/internal/core/domain"
	portsrepo "github.com/finvault/fin_statements_app/internal/core/ports/repositories"
	portssvc "github.com/finvault/fin_statements_app/internal/core/ports/services"
	"github.com/finvault/fin_statements_app/internal/dto"
	"github.com/finvault/fin_statements_app/internal/events"
	"github.com/finvault/fin_statements_app/internal/middleware"
	"github.com/finvault/fin_statements_app/internal/utils/accounting"
)

// statementService is the ledger engine: it decides whether an operation is
// admissible and orchestrates entry creation, balance and history queries.
// It is stateless between calls; all state lives in the statement repository.
type statementService struct {
	userRepo      portsrepo.UserRepositoryFacade
	statementRepo portsrepo.StatementRepositoryFacade
	publisher     events.Publisher
}

// StatementServiceOption configures optional collaborators of the service.
type StatementServiceOption func(*statementService)

// WithEventPublisher wires a publisher for statement-recorded events.
func WithEventPublisher(p events.Publisher) StatementServiceOption {
	return func(s *statementService) {
		s.publisher = p
	}
}

// NewStatementService creates a new statement service.
func NewStatementService(userRepo portsrepo.UserRepositoryFacade, statementRepo portsrepo.StatementRepositoryFacade, opts ...StatementServiceOption) portssvc.StatementSvcFacade {
	s := &statementService{
		userRepo:      userRepo,
		statementRepo: statementRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure statementService implements the portssvc.StatementSvcFacade interface
var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// validateOperation enforces the admissibility rules for a requested
// operation, in order; the first failing rule wins.
//
// The funds check runs before the self-transfer and receiver-existence
// checks: when funds are insufficient AND the transfer is a self-transfer,
// the caller sees ErrInsufficientFunds. Tests pin this order; do not reorder
// the checks without revisiting them.
func (s *statementService) validateOperation(ctx context.Context, actorUserID string, req dto.CreateStatementRequest) error {
	if _, err := s.userRepo.FindUserByID(ctx, actorUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to resolve acting user %s: %w", actorUserID, err)
	}

	// Deposits are always admissible once the actor exists.
	if req.Type == domain.Deposit {
		return nil
	}

	balance, err := s.currentBalance(ctx, actorUserID)
	if err != nil {
		return err
	}
	// Draining the balance to exactly zero is allowed.
	if req.Amount.GreaterThan(balance) {
		return domain.ErrInsufficientFunds
	}

	if req.Type == domain.Transfer {
		if req.ReceiverID == nil {
			return fmt.Errorf("%w: transfer requires a receiver", apperrors.ErrValidation)
		}
		if *req.ReceiverID == actorUserID {
			return domain.ErrSelfTransfer
		}
		if _, err := s.userRepo.FindUserByID(ctx, *req.ReceiverID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("failed to resolve receiver %s: %w", *req.ReceiverID, err)
		}
	}

	return nil
}

// currentBalance recomputes the user's balance from their full entry set.
// Balances are never cached across calls.
func (s *statementService) currentBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	statements, err := s.statementRepo.ListStatementsByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load statements for user %s: %w", userID, err)
	}
	balance, err := accounting.ComputeBalance(userID, statements)
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// CreateStatement validates and persists one monetary operation.
// Implements portssvc.StatementSvcFacade.
func (s *statementService) CreateStatement(ctx context.Context, actorUserID string, req dto.CreateStatementRequest) (*domain.Statement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateOperation(ctx, actorUserID, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if req.Type == domain.Transfer {
		receiverID := *req.ReceiverID
		debit := domain.Statement{
			StatementID:    uuid.NewString(),
			UserID:         actorUserID,
			Type:           domain.Transfer,
			Side:           domain.Debit,
			Amount:         req.Amount,
			Description:    req.Description,
			CounterpartyID: &receiverID,
			CreatedAt:      now,
		}
		credit := domain.Statement{
			StatementID:    uuid.NewString(),
			UserID:         receiverID,
			Type:           domain.Transfer,
			Side:           domain.Credit,
			Amount:         req.Amount,
			Description:    req.Description,
			CounterpartyID: &actorUserID,
			CreatedAt:      now,
		}
		if err := s.statementRepo.SaveTransferPair(ctx, debit, credit); err != nil {
			// The repository re-checks funds under its row locks; a race that
			// drained the balance since validation surfaces here.
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return nil, domain.ErrInsufficientFunds
			}
			return nil, fmt.Errorf("failed to persist transfer pair: %w", err)
		}
		s.publishRecorded(logger, debit)
		return &debit, nil
	}

	side := domain.Credit
	if req.Type == domain.Withdraw {
		side = domain.Debit
	}
	st := domain.Statement{
		StatementID: uuid.NewString(),
		UserID:      actorUserID,
		Type:        req.Type,
		Side:        side,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedAt:   now,
	}
	if err := s.statementRepo.SaveStatement(ctx, st); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return nil, domain.ErrInsufficientFunds
		}
		return nil, fmt.Errorf("failed to persist statement: %w", err)
	}
	s.publishRecorded(logger, st)
	return &st, nil
}

// GetBalance returns the current balance alongside the raw entry history.
// Implements portssvc.StatementSvcFacade.
func (s *statementService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, []domain.Statement, error) {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil, domain.ErrUserNotFound
		}
		return decimal.Zero, nil, fmt.Errorf("failed to resolve user %s: %w", userID, err)
	}

	statements, err := s.statementRepo.ListStatementsByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to load statements for user %s: %w", userID, err)
	}
	balance, err := accounting.ComputeBalance(userID, statements)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return balance, statements, nil
}

// GetStatementOperation returns a single entry belonging to the user. An
// entry owned by a different user is not found for this user.
// Implements portssvc.StatementSvcFacade.
func (s *statementService) GetStatementOperation(ctx context.Context, userID, statementID string) (*domain.Statement, error) {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user %s: %w", userID, err)
	}

	st, err := s.statementRepo.FindStatementByID(ctx, userID, statementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrStatementNotFound
		}
		return nil, fmt.Errorf("failed to find statement %s: %w", statementID, err)
	}
	return st, nil
}

// publishRecorded emits a statement-recorded event when a publisher is
// configured. Failures are logged and dropped; the ledger write already
// committed.
func (s *statementService) publishRecorded(logger *slog.Logger, st domain.Statement) {
	if s.publisher == nil {
		return
	}
	event := events.StatementRecorded{
		StatementID:    st.StatementID,
		UserID:         st.UserID,
		Type:           string(st.Type),
		Amount:         st.Amount,
		CounterpartyID: st.CounterpartyID,
		OccurredAt:     st.CreatedAt,
	}
	if err := s.publisher.Publish(events.TopicStatementRecorded, event); err != nil {
		logger.Warn("Failed to publish statement event",
			slog.String("statement_id", st.StatementID),
			slog.String("error", err.Error()),
		)
	}
}
