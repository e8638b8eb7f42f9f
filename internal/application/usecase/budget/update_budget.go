// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// UpdateBudgetInput represents the input for budget updates. Only the
// monthly limit is mutable; the category and month identify the budget.
type UpdateBudgetInput struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	MonthlyLimit decimal.Decimal
}

// UpdateBudgetOutput represents the output of budget updates.
type UpdateBudgetOutput struct {
	Budget *BudgetOutput
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	reportCache  adapter.ReportCache
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	reportCache adapter.ReportCache,
) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}

	if budget.UserID != input.UserID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNotAuthorizedBudget,
			"not authorized to modify budget",
			domainerror.ErrNotAuthorizedToModifyBudget,
		)
	}

	if input.MonthlyLimit.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonthlyLimit,
			"monthly limit must not be negative",
			domainerror.ErrInvalidMonthlyLimit,
		)
	}

	budget.MonthlyLimit = input.MonthlyLimit
	budget.UpdatedAt = time.Now().UTC()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	invalidateReportCache(ctx, uc.reportCache, input.UserID)

	categoryName := ""
	if category, err := uc.categoryRepo.FindByID(ctx, budget.CategoryID); err == nil {
		categoryName = category.Name
	}

	return &UpdateBudgetOutput{
		Budget: toBudgetOutput(budget, categoryName),
	}, nil
}
