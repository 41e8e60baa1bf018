package dto

import (
	"github.com/finvault/fin_statements_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStatementRequest defines the payload for creating one monetary
// operation. The operation type is resolved explicitly by the handler from
// the route it serves; it never travels in the request body. ReceiverID is
// set only for transfers, from the route parameter.
type CreateStatementRequest struct {
	Type        domain.OperationType `json:"-"`
	Amount      decimal.Decimal      `json:"amount" binding:"required,decimalgtzero"`
	Description string               `json:"description" binding:"required"`
	ReceiverID  *string              `json:"-"`
}

// StatementResponse defines a single ledger entry as returned by the API.
type StatementResponse struct {
	StatementID    string          `json:"statementID"`
	UserID         string          `json:"userID"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	CounterpartyID *string         `json:"counterpartyID,omitempty"`
	CreatedAt      string          `json:"createdAt"`
}

// BalanceResponse wraps the computed balance with the full entry history,
// in storage order.
type BalanceResponse struct {
	Statement []StatementResponse `json:"statement"`
	Balance   decimal.Decimal     `json:"balance"`
}

// ToStatementResponse converts a domain.Statement to its API representation.
func ToStatementResponse(st *domain.Statement) StatementResponse {
	return StatementResponse{
		StatementID:    st.StatementID,
		UserID:         st.UserID,
		Type:           string(st.Type),
		Amount:         st.Amount,
		Description:    st.Description,
		CounterpartyID: st.CounterpartyID,
		CreatedAt:      st.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// ToBalanceResponse converts a balance and its backing statements to the
// API representation.
func ToBalanceResponse(balance decimal.Decimal, statements []domain.Statement) BalanceResponse {
	entries := make([]StatementResponse, len(statements))
	for i := range statements {
		entries[i] = ToStatementResponse(&statements[i])
	}
	return BalanceResponse{
		Statement: entries,
		Balance:   balance,
	}
}
