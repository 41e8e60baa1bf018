package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/finvault/fin_statements_app/internal/apperrors"
	"github.com/finvault/fin_statements_app/internal/core/domain"
	portsrepo "github.com/finvault/fin_statements_app/internal/core/ports/repositories"
	"github.com/finvault/fin_statements_app/internal/models"
	"github.com/finvault/fin_statements_app/internal/utils/accounting"
	"github.com/finvault/fin_statements_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const statementColumns = `statement_id, user_id, type, entry_side, amount, description, receiver_id, created_at`

const insertStatementQuery = `
	INSERT INTO statements (statement_id, user_id, type, entry_side, amount, description, receiver_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for statement data.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepositoryFacade {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxStatementRepository implements portsrepo.StatementRepositoryFacade
var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

// SaveStatement persists a single deposit or withdrawal entry within a DB
// transaction. The acting user's row is locked FOR UPDATE first, which
// serializes the balance-check-then-write sequence per user: for a withdrawal
// the balance is re-derived under the lock and the insert is refused with
// domain.ErrInsufficientFunds when the funds have been drained since the
// service validated.
func (r *PgxStatementRepository) SaveStatement(ctx context.Context, st domain.Statement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	if err := lockUserRows(ctx, tx, st.UserID); err != nil {
		return err
	}

	if st.Type == domain.Withdraw {
		balance, err := balanceInTx(ctx, tx, st.UserID)
		if err != nil {
			return err
		}
		if st.Amount.GreaterThan(balance) {
			return domain.ErrInsufficientFunds
		}
	}

	modelSt := mapping.ToModelStatement(st)
	if _, err := tx.Exec(ctx, insertStatementQuery,
		modelSt.StatementID,
		modelSt.UserID,
		modelSt.Type,
		modelSt.EntrySide,
		modelSt.Amount,
		modelSt.Description,
		modelSt.ReceiverID,
		modelSt.CreatedAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert statement "+modelSt.StatementID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveTransferPair persists both sides of a transfer as one atomic unit:
// either both rows are committed or neither is. Both user rows are locked in
// deterministic order to avoid deadlocks between crossing transfers, and the
// sender's balance is re-derived under the locks before inserting.
func (r *PgxStatementRepository) SaveTransferPair(ctx context.Context, debit domain.Statement, credit domain.Statement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockUserRows(ctx, tx, debit.UserID, credit.UserID); err != nil {
		return err
	}

	balance, err := balanceInTx(ctx, tx, debit.UserID)
	if err != nil {
		return err
	}
	if debit.Amount.GreaterThan(balance) {
		return domain.ErrInsufficientFunds
	}

	batch := &pgx.Batch{}
	for _, st := range []domain.Statement{debit, credit} {
		modelSt := mapping.ToModelStatement(st)
		batch.Queue(insertStatementQuery,
			modelSt.StatementID,
			modelSt.UserID,
			modelSt.Type,
			modelSt.EntrySide,
			modelSt.Amount,
			modelSt.Description,
			modelSt.ReceiverID,
			modelSt.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert transfer pair", err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close transfer batch", err)
	}

	return r.Commit(ctx, tx)
}

// ListStatementsByUser retrieves every statement for a user in storage order.
func (r *PgxStatementRepository) ListStatementsByUser(ctx context.Context, userID string) ([]domain.Statement, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM statements
		WHERE user_id = $1
		ORDER BY created_at, statement_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements for user %s: %w", userID, err)
	}
	defer rows.Close()

	return scanStatements(rows)
}

// FindStatementByID retrieves a single statement scoped to the given user.
// A statement owned by a different user is reported as not found.
func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, userID, statementID string) (*domain.Statement, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM statements
		WHERE statement_id = $1 AND user_id = $2;
	`
	var m models.Statement
	err := r.Pool.QueryRow(ctx, query, statementID, userID).Scan(
		&m.StatementID,
		&m.UserID,
		&m.Type,
		&m.EntrySide,
		&m.Amount,
		&m.Description,
		&m.ReceiverID,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find statement %s: %w", statementID, err)
	}

	st := mapping.ToDomainStatement(m)
	return &st, nil
}

// lockUserRows takes FOR UPDATE locks on the given user rows in a
// deterministic order. A missing user surfaces as apperrors.ErrNotFound.
func lockUserRows(ctx context.Context, tx pgx.Tx, userIDs ...string) error {
	sorted := make([]string, len(userIDs))
	copy(sorted, userIDs)
	sort.Strings(sorted)

	for _, id := range sorted {
		var locked string
		err := tx.QueryRow(ctx, `SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE;`, id).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
			}
			return apperrors.NewAppError(500, "failed to lock user row "+id, err)
		}
	}
	return nil
}

// balanceInTx re-derives the user's balance from their full entry set inside
// the current transaction.
func balanceInTx(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM statements
		WHERE user_id = $1;
	`
	rows, err := tx.Query(ctx, query, userID)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to query statements for balance", err)
	}
	defer rows.Close()

	statements, err := scanStatements(rows)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.ComputeBalance(userID, statements)
}

func scanStatements(rows pgx.Rows) ([]domain.Statement, error) {
	modelStatements := []models.Statement{}
	for rows.Next() {
		var m models.Statement
		if err := rows.Scan(
			&m.StatementID,
			&m.UserID,
			&m.Type,
			&m.EntrySide,
			&m.Amount,
			&m.Description,
			&m.ReceiverID,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		modelStatements = append(modelStatements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statement rows: %w", err)
	}
	return mapping.ToDomainStatementSlice(modelStatements), nil
}
