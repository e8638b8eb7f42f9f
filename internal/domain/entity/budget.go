// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a per-user monthly spending ceiling for one category.
// At most one budget exists per (user, category, month, year).
type Budget struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	MonthlyLimit decimal.Decimal
	Month        int // 1-12
	Year         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(userID, categoryID uuid.UUID, monthlyLimit decimal.Decimal, month, year int) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:           uuid.New(),
		UserID:       userID,
		CategoryID:   categoryID,
		MonthlyLimit: monthlyLimit,
		Month:        month,
		Year:         year,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// BudgetWithCategory represents a budget annotated with its category.
type BudgetWithCategory struct {
	Budget   *Budget
	Category *Category
}
