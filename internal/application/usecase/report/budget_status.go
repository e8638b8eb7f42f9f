// Package report contains the financial aggregation and reporting use cases.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// Budget status labels.
const (
	BudgetStatusSuccess = "success"
	BudgetStatusWarning = "warning"
	BudgetStatusDanger  = "danger"
)

var (
	warningThreshold = decimal.NewFromInt(80)
	dangerThreshold  = decimal.NewFromInt(100)
	hundred          = decimal.NewFromInt(100)
)

// BudgetComparison is the budget-vs-actual result for one budgeted category.
type BudgetComparison struct {
	BudgetID     uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	MonthlyLimit decimal.Decimal
	ActualSpent  decimal.Decimal
	Remaining    decimal.Decimal // limit minus actual; negative = over budget
	Percentage   decimal.Decimal // rounded to 1 decimal place; 0 when limit <= 0
	Status       string
}

// GetBudgetStatusUseCase computes budget-vs-actual comparisons for one
// user and calendar month.
type GetBudgetStatusUseCase struct {
	budgetRepo adapter.BudgetRepository
	reportRepo ReportRepository
	clock      adapter.Clock
}

// NewGetBudgetStatusUseCase creates a new GetBudgetStatusUseCase instance.
func NewGetBudgetStatusUseCase(
	budgetRepo adapter.BudgetRepository,
	reportRepo ReportRepository,
	clock adapter.Clock,
) *GetBudgetStatusUseCase {
	return &GetBudgetStatusUseCase{
		budgetRepo: budgetRepo,
		reportRepo: reportRepo,
		clock:      clock,
	}
}

// Execute returns one comparison per budget the user owns for the given
// month and year. Actual spending is summed from the first day of the month
// through today (or through month end for past months). A budget whose
// category cannot be resolved is logged and skipped, never fatal.
func (uc *GetBudgetStatusUseCase) Execute(ctx context.Context, userID uuid.UUID, month, year int) ([]BudgetComparison, error) {
	if month < 1 || month > 12 {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidMonth,
			"invalid budget month",
			domainerror.ErrInvalidMonth,
		)
	}

	budgets, err := uc.budgetRepo.FindByUserAndMonth(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	today := truncateToDate(uc.clock.Now())
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, today.Location())
	end := start.AddDate(0, 1, -1)
	if end.After(today) {
		end = today
	}

	comparisons := make([]BudgetComparison, 0, len(budgets))
	for _, b := range budgets {
		if b.Category == nil {
			slog.Warn("Skipping budget with unresolved category",
				"budget_id", b.Budget.ID, "user_id", userID)
			continue
		}

		actual, err := uc.reportRepo.GetCategorySpending(ctx, userID, b.Budget.CategoryID, start, end)
		if err != nil {
			slog.Warn("Skipping budget, failed to compute actual spending",
				"budget_id", b.Budget.ID, "error", err)
			continue
		}

		percentage := usagePercentage(actual, b.Budget.MonthlyLimit)
		comparisons = append(comparisons, BudgetComparison{
			BudgetID:     b.Budget.ID,
			CategoryID:   b.Budget.CategoryID,
			CategoryName: b.Category.Name,
			MonthlyLimit: b.Budget.MonthlyLimit,
			ActualSpent:  actual,
			Remaining:    b.Budget.MonthlyLimit.Sub(actual),
			Percentage:   percentage,
			Status:       budgetStatus(percentage),
		})
	}

	return comparisons, nil
}

// usagePercentage returns actual/limit*100 rounded to 1 decimal place,
// or zero when the limit is not positive.
func usagePercentage(actual, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return actual.Div(limit).Mul(hundred).Round(1)
}

// budgetStatus maps a usage percentage to its display status.
func budgetStatus(percentage decimal.Decimal) string {
	switch {
	case percentage.GreaterThan(dangerThreshold):
		return BudgetStatusDanger
	case percentage.GreaterThanOrEqual(warningThreshold):
		return BudgetStatusWarning
	default:
		return BudgetStatusSuccess
	}
}
