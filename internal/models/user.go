package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account on the host side of the engine. The ledger
// itself only ever sees user ids: by the time an id reaches a ledger
// operation, the RPC layer has already verified the caller owns it.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique, used for login).
	Email string `json:"email"`

	// DisplayName is the name shown to other group members.
	DisplayName string `json:"display_name"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"password_hash"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}

// NewUser creates a user with a fresh UUID and creation timestamp.
func NewUser(email, displayName, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
