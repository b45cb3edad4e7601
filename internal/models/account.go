package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountDB represents an account row in the users table.
type AccountDB struct {
	AccountID    uuid.UUID `json:"id" db:"user_id"`            // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username (case-insensitive)
	Email        string    `json:"email" db:"email"`           // Unique lowercase email
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt digest, never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// Account is the outward representation of an account.
// swagger:model Account
type Account struct {
	// Account identifier
	// example: 0b5c1f0e-8d44-4c4b-9c39-6f1f3b2a9d10
	ID uuid.UUID `json:"id"`

	// Username
	// example: alice
	Username string `json:"username"`

	// Email
	// example: a@x.com
	Email string `json:"email"`

	// Creation timestamp
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips storage-only fields from the account.
func (a *AccountDB) Public() *Account {
	return &Account{
		ID:        a.AccountID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}
