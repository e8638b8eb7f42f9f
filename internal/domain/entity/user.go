// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user of the fintrack system.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	AlertEmails  bool // receive budget alert emails
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()

	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		AlertEmails:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
