// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
// Uniqueness per (user, category, month, year) is enforced by the store's
// unique index, not by engine-side locking.
type BudgetRepository interface {
	// Create creates a new budget. Returns ErrBudgetAlreadyExists when the
	// (user, category, month, year) combination is already budgeted.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUserAndMonth retrieves all budgets a user owns for a calendar month,
	// each with its category.
	FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.BudgetWithCategory, error)

	// FindByUserCategoryMonth retrieves the single budget for the combination,
	// or ErrBudgetNotFound.
	FindByUserCategoryMonth(ctx context.Context, userID, categoryID uuid.UUID, month, year int) (*entity.Budget, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
