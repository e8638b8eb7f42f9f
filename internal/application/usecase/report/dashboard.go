// Package report contains the financial aggregation and reporting use cases.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
)

const dashboardCacheOp = "dashboard"

// DashboardView is the flat view-model the dashboard renders from.
type DashboardView struct {
	Balance            decimal.Decimal    `json:"balance"`
	PeriodExpense      decimal.Decimal    `json:"period_expense"`
	PeriodIncome       decimal.Decimal    `json:"period_income"`
	LastMonthExpense   decimal.Decimal    `json:"last_month_expense"`
	CategoryLabels     []string           `json:"category_labels"`
	CategoryValues     []decimal.Decimal  `json:"category_values"`
	RecentTransactions []LedgerEntry      `json:"recent_transactions"`
	Budgets            []BudgetComparison `json:"budgets"`
	TotalBudgeted      decimal.Decimal    `json:"total_budgeted"`
	TotalSpent         decimal.Decimal    `json:"total_spent"`
	Alerts             []BudgetAlert      `json:"alerts"`
	DailyTrend         []TrendPoint       `json:"daily_trend"`
	WeeklyTrend        []TrendPoint       `json:"weekly_trend"`
	MonthlyTrend       []TrendPoint       `json:"monthly_trend"`
	PeriodStart        string             `json:"period_start"`
	PeriodEnd          string             `json:"period_end"`
}

// AssembleDashboard composes an overview and its budget comparisons into the
// dashboard view-model. Pure assembly, no I/O.
func AssembleDashboard(overview *Overview, comparisons []BudgetComparison) *DashboardView {
	labels := make([]string, 0, len(overview.CategoryBreakdown))
	values := make([]decimal.Decimal, 0, len(overview.CategoryBreakdown))
	for _, ct := range overview.CategoryBreakdown {
		labels = append(labels, ct.CategoryName)
		values = append(values, ct.Amount)
	}

	totalBudgeted := decimal.Zero
	totalSpent := decimal.Zero
	for _, c := range comparisons {
		totalBudgeted = totalBudgeted.Add(c.MonthlyLimit)
		totalSpent = totalSpent.Add(c.ActualSpent)
	}

	return &DashboardView{
		Balance:            overview.Balance,
		PeriodExpense:      overview.PeriodExpense,
		PeriodIncome:       overview.PeriodIncome,
		LastMonthExpense:   overview.LastMonthExpense,
		CategoryLabels:     labels,
		CategoryValues:     values,
		RecentTransactions: overview.RecentTransactions,
		Budgets:            comparisons,
		TotalBudgeted:      totalBudgeted,
		TotalSpent:         totalSpent,
		Alerts:             EvaluateBudgetAlerts(comparisons),
		DailyTrend:         overview.DailyTrend,
		WeeklyTrend:        overview.WeeklyTrend,
		MonthlyTrend:       overview.MonthlyTrend,
		PeriodStart:        overview.Period.Start.Format(DateLayout),
		PeriodEnd:          overview.Period.End.Format(DateLayout),
	}
}

// GetDashboardUseCase resolves the period, runs the aggregation engine and
// budget status computation, and assembles the dashboard view-model.
type GetDashboardUseCase struct {
	overviewUseCase     *GetOverviewUseCase
	budgetStatusUseCase *GetBudgetStatusUseCase
	cache               adapter.ReportCache
	clock               adapter.Clock
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	overviewUseCase *GetOverviewUseCase,
	budgetStatusUseCase *GetBudgetStatusUseCase,
	cache adapter.ReportCache,
	clock adapter.Clock,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		overviewUseCase:     overviewUseCase,
		budgetStatusUseCase: budgetStatusUseCase,
		cache:               cache,
		clock:               clock,
	}
}

// Execute builds the dashboard for the requested period. Results are served
// from the report cache when available; the cache is invalidated on every
// transaction or budget write, so a hit is never stale.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, userID uuid.UUID, req PeriodRequest) (*DashboardView, error) {
	today := truncateToDate(uc.clock.Now())

	period, err := ResolvePeriod(req, today)
	if err != nil {
		return nil, err
	}

	cacheKey := period.Start.Format(DateLayout) + ":" + period.End.Format(DateLayout)
	if uc.cache != nil {
		var cached DashboardView
		hit, err := uc.cache.Get(ctx, dashboardCacheOp, userID, cacheKey, &cached)
		if err != nil {
			slog.Warn("Dashboard cache read failed", "user_id", userID, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	overview, err := uc.overviewUseCase.Execute(ctx, userID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to compute overview: %w", err)
	}

	// Budget comparison is always anchored to the current calendar month,
	// independent of the report period.
	comparisons, err := uc.budgetStatusUseCase.Execute(ctx, userID, int(today.Month()), today.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to compute budget status: %w", err)
	}

	view := AssembleDashboard(overview, comparisons)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, dashboardCacheOp, userID, cacheKey, view); err != nil {
			slog.Warn("Dashboard cache write failed", "user_id", userID, "error", err)
		}
	}

	return view, nil
}
