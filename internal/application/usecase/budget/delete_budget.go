// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// DeleteBudgetInput represents the input for budget deletion.
type DeleteBudgetInput struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// DeleteBudgetUseCase handles budget deletion logic.
type DeleteBudgetUseCase struct {
	budgetRepo  adapter.BudgetRepository
	reportCache adapter.ReportCache
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	reportCache adapter.ReportCache,
) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		budgetRepo:  budgetRepo,
		reportCache: reportCache,
	}
}

// Execute performs the budget deletion.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) error {
	budget, err := uc.budgetRepo.FindByID(ctx, input.ID)
	if err != nil {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}

	if budget.UserID != input.UserID {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeNotAuthorizedBudget,
			"not authorized to modify budget",
			domainerror.ErrNotAuthorizedToModifyBudget,
		)
	}

	if err := uc.budgetRepo.Delete(ctx, input.ID); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	invalidateReportCache(ctx, uc.reportCache, input.UserID)

	return nil
}
