package accounting

import (
	"fmt"

	"github.com/finvault/fin_statements_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a statement amount from
// the perspective of the account the statement belongs to.
// This is used in both services and repositories to ensure consistent ledger logic.
func CalculateSignedAmount(st domain.Statement) (decimal.Decimal, error) {
	switch st.Type {
	case domain.Deposit:
		return st.Amount, nil
	case domain.Withdraw:
		return st.Amount.Neg(), nil
	case domain.Transfer:
		// A transfer row is stored from the perspective of the account it
		// belongs to: the sender's row is the debit, the receiver's the credit.
		if st.Side == domain.Credit {
			return st.Amount, nil
		}
		return st.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown operation type '%s' encountered for statement %s", st.Type, st.StatementID)
	}
}

// ComputeBalance reduces a single user's statements to their current balance.
// The reduction is commutative over the statement set: the result does not
// depend on iteration order, so append-only storage needs no ordering
// guarantee for correctness.
//
// Statements belonging to a different user are a caller contract violation,
// not a domain outcome, and are reported as a plain error.
func ComputeBalance(userID string, statements []domain.Statement) (decimal.Decimal, error) {
	balance := decimal.Zero
	for _, st := range statements {
		if st.UserID != userID {
			return decimal.Zero, fmt.Errorf("statement %s belongs to user %s, not %s", st.StatementID, st.UserID, userID)
		}
		signed, err := CalculateSignedAmount(st)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(signed)
	}
	return balance, nil
}
