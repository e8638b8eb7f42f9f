// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*BudgetOutput
}

// ListBudgetsUseCase handles listing a user's budgets for one month.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidBudgetMonth,
		)
	}

	budgets, err := uc.budgetRepo.FindByUserAndMonth(ctx, input.UserID, input.Month, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	outputs := make([]*BudgetOutput, 0, len(budgets))
	for _, b := range budgets {
		categoryName := ""
		if b.Category != nil {
			categoryName = b.Category.Name
		}
		outputs = append(outputs, toBudgetOutput(b.Budget, categoryName))
	}

	return &ListBudgetsOutput{Budgets: outputs}, nil
}
