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
)

const (
	recentTransactionLimit = 5
	weeklyTrendBuckets     = 8
	monthlyTrendBuckets    = 6
)

// TrendPoint is one bucket of a spending trend series.
type TrendPoint struct {
	Date   time.Time
	Label  string
	Amount decimal.Decimal
}

// Overview bundles every aggregate the dashboard and export consume, scoped
// to one user and one period. It is built per request and never shared.
type Overview struct {
	Period               Period
	Balance              decimal.Decimal
	PeriodExpense        decimal.Decimal
	PeriodIncome         decimal.Decimal
	LastMonthExpense     decimal.Decimal
	LastYearMonthExpense decimal.Decimal
	CategoryBreakdown    []CategoryTotal
	RecentTransactions   []LedgerEntry
	DailyTrend           []TrendPoint
	WeeklyTrend          []TrendPoint
	MonthlyTrend         []TrendPoint
}

// GetOverviewUseCase computes the aggregation result for one user and period.
type GetOverviewUseCase struct {
	reportRepo ReportRepository
	clock      adapter.Clock
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(reportRepo ReportRepository, clock adapter.Clock) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		reportRepo: reportRepo,
		clock:      clock,
	}
}

// Execute computes the overview. A user with no transactions yields zero
// values and empty series, never an error. The comparison aggregates
// (last month, same month last year, weekly and monthly trends) are anchored
// to today regardless of the requested period.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, userID uuid.UUID, period Period) (*Overview, error) {
	today := truncateToDate(uc.clock.Now())

	balance, err := uc.reportRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	periodExpense, err := uc.reportRepo.GetTypeTotal(ctx, userID, debitType, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get period expense: %w", err)
	}

	periodIncome, err := uc.reportRepo.GetTypeTotal(ctx, userID, creditType, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get period income: %w", err)
	}

	lastMonthStart, lastMonthEnd := previousMonthBounds(today)
	lastMonthExpense, err := uc.reportRepo.GetTypeTotal(ctx, userID, debitType, lastMonthStart, lastMonthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get last month expense: %w", err)
	}

	lastYearMonthExpense := uc.lastYearSameMonthExpense(ctx, userID, today)

	breakdown, err := uc.reportRepo.GetCategoryBreakdown(ctx, userID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	recent, err := uc.reportRepo.GetRecentTransactions(ctx, userID, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}

	dailyTrend, err := uc.dailyTrend(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	weeklyTrend, err := uc.weeklyTrend(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	monthlyTrend, err := uc.monthlyTrend(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Period:               period,
		Balance:              balance,
		PeriodExpense:        periodExpense,
		PeriodIncome:         periodIncome,
		LastMonthExpense:     lastMonthExpense,
		LastYearMonthExpense: lastYearMonthExpense,
		CategoryBreakdown:    breakdown,
		RecentTransactions:   recent,
		DailyTrend:           dailyTrend,
		WeeklyTrend:          weeklyTrend,
		MonthlyTrend:         monthlyTrend,
	}, nil
}

// lastYearSameMonthExpense returns the DEBIT sum for the calendar month one
// year before the current month. Any failure here degrades to zero rather
// than aborting the report.
func (uc *GetOverviewUseCase) lastYearSameMonthExpense(ctx context.Context, userID uuid.UUID, today time.Time) decimal.Decimal {
	start := time.Date(today.Year()-1, today.Month(), 1, 0, 0, 0, 0, today.Location())
	if start.Month() != today.Month() {
		// Date construction normalized into a different month; skip.
		slog.Warn("Skipping same-month-last-year expense, invalid month construction",
			"user_id", userID, "month", int(today.Month()), "year", today.Year()-1)
		return decimal.Zero
	}
	end := start.AddDate(0, 1, -1)

	total, err := uc.reportRepo.GetTypeTotal(ctx, userID, debitType, start, end)
	if err != nil {
		slog.Warn("Skipping same-month-last-year expense", "user_id", userID, "error", err)
		return decimal.Zero
	}
	return total
}

// dailyTrend returns one point per date with DEBIT activity in the period,
// ascending. Dates with no spending are omitted, not zero-filled.
func (uc *GetOverviewUseCase) dailyTrend(ctx context.Context, userID uuid.UUID, period Period) ([]TrendPoint, error) {
	totals, err := uc.reportRepo.GetDailyExpenses(ctx, userID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily expenses: %w", err)
	}

	points := make([]TrendPoint, 0, len(totals))
	for _, dt := range totals {
		points = append(points, TrendPoint{
			Date:   dt.Date,
			Label:  dt.Date.Format(DateLayout),
			Amount: dt.Amount,
		})
	}
	return points, nil
}

// weeklyTrend returns exactly 8 fixed 7-day buckets ending today, oldest
// first, zero-filled. The buckets are deliberately not aligned to calendar
// weeks.
func (uc *GetOverviewUseCase) weeklyTrend(ctx context.Context, userID uuid.UUID, today time.Time) ([]TrendPoint, error) {
	oldestStart := today.AddDate(0, 0, -6-7*(weeklyTrendBuckets-1))

	totals, err := uc.reportRepo.GetDailyExpenses(ctx, userID, oldestStart, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly trend data: %w", err)
	}

	byDate := make(map[string]decimal.Decimal, len(totals))
	for _, dt := range totals {
		key := dt.Date.Format(DateLayout)
		byDate[key] = byDate[key].Add(dt.Amount)
	}

	points := make([]TrendPoint, 0, weeklyTrendBuckets)
	for i := 0; i < weeklyTrendBuckets; i++ {
		start := today.AddDate(0, 0, -6-7*(weeklyTrendBuckets-1-i))
		sum := decimal.Zero
		for d := 0; d < 7; d++ {
			key := start.AddDate(0, 0, d).Format(DateLayout)
			sum = sum.Add(byDate[key])
		}
		points = append(points, TrendPoint{
			Date:   start,
			Label:  start.Format("Jan 02"),
			Amount: sum,
		})
	}
	return points, nil
}

// monthlyTrend returns exactly 6 calendar-month buckets, oldest first,
// zero-filled. Bucket anchors step back in fixed 30-day increments
// normalized to day 1, which can drift from true month boundaries; this
// bucketing policy is kept as defined.
func (uc *GetOverviewUseCase) monthlyTrend(ctx context.Context, userID uuid.UUID, today time.Time) ([]TrendPoint, error) {
	points := make([]TrendPoint, 0, monthlyTrendBuckets)
	for i := monthlyTrendBuckets - 1; i >= 0; i-- {
		anchor := today.AddDate(0, 0, -30*i)
		start := firstOfMonth(anchor)
		end := start.AddDate(0, 1, -1)

		total, err := uc.reportRepo.GetTypeTotal(ctx, userID, debitType, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to get monthly trend data: %w", err)
		}

		points = append(points, TrendPoint{
			Date:   start,
			Label:  start.Format("Jan 2006"),
			Amount: total,
		})
	}
	return points, nil
}

// previousMonthBounds returns the first and last day of the calendar month
// before the one containing the given date.
func previousMonthBounds(date time.Time) (time.Time, time.Time) {
	end := firstOfMonth(date).AddDate(0, 0, -1)
	return firstOfMonth(end), end
}
