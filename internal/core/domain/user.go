package domain

import "time"

// User represents an account holder. The ledger core only ever needs the
// UserID; the remaining fields exist for registration and authentication.
type User struct {
	UserID        string    `json:"userID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
