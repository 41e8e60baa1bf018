package accounting_test

import (
	"testing"

	"github.com/finvault/fin_statements_app/internal/core/domain"
	"github.com/finvault/fin_statements_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(userID string, opType domain.OperationType, side domain.EntrySide, amount string) domain.Statement {
	return domain.Statement{
		StatementID: uuid.NewString(),
		UserID:      userID,
		Type:        opType,
		Side:        side,
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestCalculateSignedAmount(t *testing.T) {
	userID := uuid.NewString()

	tests := []struct {
		name string
		st   domain.Statement
		want string
	}{
		{"deposit is positive", entry(userID, domain.Deposit, domain.Credit, "100.50"), "100.50"},
		{"withdraw is negative", entry(userID, domain.Withdraw, domain.Debit, "40.25"), "-40.25"},
		{"transfer debit is negative", entry(userID, domain.Transfer, domain.Debit, "30"), "-30"},
		{"transfer credit is positive", entry(userID, domain.Transfer, domain.Credit, "30"), "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.CalculateSignedAmount(tt.st)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"expected %s, got %s", tt.want, got)
		})
	}
}

func TestCalculateSignedAmount_UnknownType(t *testing.T) {
	st := entry(uuid.NewString(), domain.OperationType("chargeback"), domain.Debit, "10")

	_, err := accounting.CalculateSignedAmount(st)

	require.Error(t, err)
}

func TestComputeBalance_MixedHistory(t *testing.T) {
	userID := uuid.NewString()
	statements := []domain.Statement{
		entry(userID, domain.Deposit, domain.Credit, "200"),
		entry(userID, domain.Withdraw, domain.Debit, "50.75"),
		entry(userID, domain.Transfer, domain.Debit, "30"),
		entry(userID, domain.Transfer, domain.Credit, "10.25"),
	}

	balance, err := accounting.ComputeBalance(userID, statements)

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("129.50")),
		"expected 129.50, got %s", balance)
}

// The reduction is commutative: any ordering of the same entry set yields
// the same balance.
func TestComputeBalance_OrderIndependent(t *testing.T) {
	userID := uuid.NewString()
	statements := []domain.Statement{
		entry(userID, domain.Deposit, domain.Credit, "100"),
		entry(userID, domain.Deposit, domain.Credit, "55.55"),
		entry(userID, domain.Withdraw, domain.Debit, "20"),
		entry(userID, domain.Transfer, domain.Debit, "35.55"),
		entry(userID, domain.Transfer, domain.Credit, "7"),
	}

	want, err := accounting.ComputeBalance(userID, statements)
	require.NoError(t, err)

	reversed := make([]domain.Statement, len(statements))
	for i, st := range statements {
		reversed[len(statements)-1-i] = st
	}
	got, err := accounting.ComputeBalance(userID, reversed)
	require.NoError(t, err)
	assert.True(t, want.Equal(got), "reversed order changed the balance: %s vs %s", want, got)

	rotated := append(statements[2:], statements[:2]...)
	got, err = accounting.ComputeBalance(userID, rotated)
	require.NoError(t, err)
	assert.True(t, want.Equal(got), "rotated order changed the balance: %s vs %s", want, got)
}

func TestComputeBalance_EmptyIsZero(t *testing.T) {
	balance, err := accounting.ComputeBalance(uuid.NewString(), nil)

	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestComputeBalance_ForeignStatementRejected(t *testing.T) {
	userID := uuid.NewString()
	statements := []domain.Statement{
		entry(userID, domain.Deposit, domain.Credit, "100"),
		entry(uuid.NewString(), domain.Deposit, domain.Credit, "9999"),
	}

	_, err := accounting.ComputeBalance(userID, statements)

	require.Error(t, err)
}
