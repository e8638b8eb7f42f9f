package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

// fixedClock returns the same instant on every call.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// mockReportRepo implements ReportRepository with per-method overrides.
// Unset methods return zero values.
type mockReportRepo struct {
	balanceFn           func(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	typeTotalFn         func(ctx context.Context, userID uuid.UUID, txType entity.TransactionType, start, end time.Time) (decimal.Decimal, error)
	categoryBreakdownFn func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]CategoryTotal, error)
	categorySpendingFn  func(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	dailyExpensesFn     func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]DailyTotal, error)
	recentFn            func(ctx context.Context, userID uuid.UUID, limit int) ([]LedgerEntry, error)
	historyFn           func(ctx context.Context, userID uuid.UUID) ([]LedgerEntry, error)
}

func (m *mockReportRepo) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	if m.balanceFn != nil {
		return m.balanceFn(ctx, userID)
	}
	return decimal.Zero, nil
}

func (m *mockReportRepo) GetTypeTotal(ctx context.Context, userID uuid.UUID, txType entity.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	if m.typeTotalFn != nil {
		return m.typeTotalFn(ctx, userID, txType, start, end)
	}
	return decimal.Zero, nil
}

func (m *mockReportRepo) GetCategoryBreakdown(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]CategoryTotal, error) {
	if m.categoryBreakdownFn != nil {
		return m.categoryBreakdownFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *mockReportRepo) GetCategorySpending(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	if m.categorySpendingFn != nil {
		return m.categorySpendingFn(ctx, userID, categoryID, start, end)
	}
	return decimal.Zero, nil
}

func (m *mockReportRepo) GetDailyExpenses(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]DailyTotal, error) {
	if m.dailyExpensesFn != nil {
		return m.dailyExpensesFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *mockReportRepo) GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]LedgerEntry, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockReportRepo) GetTransactionHistory(ctx context.Context, userID uuid.UUID) ([]LedgerEntry, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, userID)
	}
	return nil, nil
}

// mockBudgetRepo implements adapter.BudgetRepository for budget status tests.
type mockBudgetRepo struct {
	findByUserAndMonthFn func(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.BudgetWithCategory, error)
}

func (m *mockBudgetRepo) Create(ctx context.Context, budget *entity.Budget) error { return nil }

func (m *mockBudgetRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	return nil, nil
}

func (m *mockBudgetRepo) FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.BudgetWithCategory, error) {
	if m.findByUserAndMonthFn != nil {
		return m.findByUserAndMonthFn(ctx, userID, month, year)
	}
	return nil, nil
}

func (m *mockBudgetRepo) FindByUserCategoryMonth(ctx context.Context, userID, categoryID uuid.UUID, month, year int) (*entity.Budget, error) {
	return nil, nil
}

func (m *mockBudgetRepo) Update(ctx context.Context, budget *entity.Budget) error { return nil }

func (m *mockBudgetRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func budgetWithCategory(userID uuid.UUID, name string, limit decimal.Decimal, month, year int) *entity.BudgetWithCategory {
	categoryID := uuid.New()
	return &entity.BudgetWithCategory{
		Budget: &entity.Budget{
			ID:           uuid.New(),
			UserID:       userID,
			CategoryID:   categoryID,
			MonthlyLimit: limit,
			Month:        month,
			Year:         year,
		},
		Category: &entity.Category{
			ID:   categoryID,
			Name: name,
		},
	}
}
