// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	MonthlyLimit decimal.Decimal
	Month        int
	Year         int
}

// BudgetOutput represents a single budget in the output.
type BudgetOutput struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	MonthlyLimit decimal.Decimal
	Month        int
	Year         int
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *BudgetOutput
}

// CreateBudgetUseCase handles budget creation logic. Uniqueness per
// (user, category, month, year) is enforced by the store's unique index;
// a violation surfaces as ErrBudgetAlreadyExists.
type CreateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	reportCache  adapter.ReportCache
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	reportCache adapter.ReportCache,
) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if err := validateBudgetFields(input.MonthlyLimit, input.Month); err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			"category not found",
			domainerror.ErrBudgetCategoryNotFound,
		)
	}
	if !category.VisibleTo(input.UserID) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotVisible,
			"category does not belong to user",
			domainerror.ErrBudgetCategoryNotVisible,
		)
	}

	budget := entity.NewBudget(input.UserID, input.CategoryID, input.MonthlyLimit, input.Month, input.Year)

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetAlreadyExists,
				"a budget already exists for this category and month",
				domainerror.ErrBudgetAlreadyExists,
			)
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	invalidateReportCache(ctx, uc.reportCache, input.UserID)

	return &CreateBudgetOutput{
		Budget: toBudgetOutput(budget, category.Name),
	}, nil
}

func validateBudgetFields(monthlyLimit decimal.Decimal, month int) error {
	if monthlyLimit.IsNegative() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonthlyLimit,
			"monthly limit must not be negative",
			domainerror.ErrInvalidMonthlyLimit,
		)
	}
	if month < 1 || month > 12 {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidBudgetMonth,
		)
	}
	return nil
}

// invalidateReportCache drops the user's cached reports after a budget write.
// Failures are logged, not returned.
func invalidateReportCache(ctx context.Context, cache adapter.ReportCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("Report cache invalidation failed", "user_id", userID, "error", err)
	}
}

func toBudgetOutput(b *entity.Budget, categoryName string) *BudgetOutput {
	return &BudgetOutput{
		ID:           b.ID,
		UserID:       b.UserID,
		CategoryID:   b.CategoryID,
		CategoryName: categoryName,
		MonthlyLimit: b.MonthlyLimit,
		Month:        b.Month,
		Year:         b.Year,
	}
}
