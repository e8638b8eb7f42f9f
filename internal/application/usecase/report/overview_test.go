package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

func TestGetOverviewUseCase_EmptyLedger(t *testing.T) {
	clock := fixedClock{now: date(2024, time.March, 15)}
	uc := NewGetOverviewUseCase(&mockReportRepo{}, clock)

	period := Period{Start: date(2024, time.March, 1), End: date(2024, time.March, 15)}
	overview, err := uc.Execute(context.Background(), uuid.New(), period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !overview.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", overview.Balance)
	}
	if !overview.PeriodExpense.IsZero() || !overview.PeriodIncome.IsZero() {
		t.Error("expected zero period totals")
	}
	if len(overview.CategoryBreakdown) != 0 {
		t.Errorf("expected empty breakdown, got %d entries", len(overview.CategoryBreakdown))
	}
	if len(overview.DailyTrend) != 0 {
		t.Errorf("expected empty daily trend, got %d points", len(overview.DailyTrend))
	}
	// Zero-filled series keep their fixed lengths even with no data.
	if len(overview.WeeklyTrend) != 8 {
		t.Errorf("expected 8 weekly buckets, got %d", len(overview.WeeklyTrend))
	}
	if len(overview.MonthlyTrend) != 6 {
		t.Errorf("expected 6 monthly buckets, got %d", len(overview.MonthlyTrend))
	}
	for _, p := range overview.WeeklyTrend {
		if !p.Amount.IsZero() {
			t.Errorf("expected zero weekly bucket, got %s at %s", p.Amount, p.Label)
		}
	}
}

func TestGetOverviewUseCase_PeriodTotals(t *testing.T) {
	today := date(2024, time.March, 15)
	clock := fixedClock{now: today}
	period := Period{Start: date(2024, time.March, 1), End: today}

	repo := &mockReportRepo{
		balanceFn: func(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
			return decimal.NewFromInt(1250), nil
		},
		typeTotalFn: func(ctx context.Context, userID uuid.UUID, txType entity.TransactionType, start, end time.Time) (decimal.Decimal, error) {
			// Period expense and income.
			if start.Equal(period.Start) && end.Equal(period.End) {
				if txType == entity.TransactionTypeDebit {
					return decimal.NewFromInt(400), nil
				}
				return decimal.NewFromInt(900), nil
			}
			// Previous calendar month expense.
			if start.Equal(date(2024, time.February, 1)) && end.Equal(date(2024, time.February, 29)) {
				return decimal.NewFromInt(320), nil
			}
			// Same month last year.
			if start.Equal(date(2023, time.March, 1)) && end.Equal(date(2023, time.March, 31)) {
				return decimal.NewFromInt(275), nil
			}
			return decimal.Zero, nil
		},
	}

	overview, err := NewGetOverviewUseCase(repo, clock).Execute(context.Background(), uuid.New(), period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !overview.Balance.Equal(decimal.NewFromInt(1250)) {
		t.Errorf("expected balance 1250, got %s", overview.Balance)
	}
	if !overview.PeriodExpense.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected period expense 400, got %s", overview.PeriodExpense)
	}
	if !overview.PeriodIncome.Equal(decimal.NewFromInt(900)) {
		t.Errorf("expected period income 900, got %s", overview.PeriodIncome)
	}
	if !overview.LastMonthExpense.Equal(decimal.NewFromInt(320)) {
		t.Errorf("expected last month expense 320, got %s", overview.LastMonthExpense)
	}
	if !overview.LastYearMonthExpense.Equal(decimal.NewFromInt(275)) {
		t.Errorf("expected last year month expense 275, got %s", overview.LastYearMonthExpense)
	}
}

func TestGetOverviewUseCase_LastYearFailureDegradesToZero(t *testing.T) {
	today := date(2024, time.March, 15)
	clock := fixedClock{now: today}

	repo := &mockReportRepo{
		typeTotalFn: func(ctx context.Context, userID uuid.UUID, txType entity.TransactionType, start, end time.Time) (decimal.Decimal, error) {
			if start.Year() == 2023 {
				return decimal.Zero, errors.New("query timeout")
			}
			return decimal.NewFromInt(10), nil
		},
	}

	period := Period{Start: date(2024, time.March, 1), End: today}
	overview, err := NewGetOverviewUseCase(repo, clock).Execute(context.Background(), uuid.New(), period)
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}
	if !overview.LastYearMonthExpense.IsZero() {
		t.Errorf("expected zero fallback, got %s", overview.LastYearMonthExpense)
	}
}

func TestGetOverviewUseCase_DailyTrendOmitsGaps(t *testing.T) {
	today := date(2024, time.March, 15)
	clock := fixedClock{now: today}
	period := Period{Start: date(2024, time.March, 1), End: today}

	repo := &mockReportRepo{
		dailyExpensesFn: func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]DailyTotal, error) {
			// The weekly trend queries a wider window than the period.
			if !start.Equal(period.Start) {
				return nil, nil
			}
			return []DailyTotal{
				{Date: date(2024, time.March, 2), Amount: decimal.NewFromInt(30)},
				{Date: date(2024, time.March, 9), Amount: decimal.NewFromInt(45)},
			}, nil
		},
	}

	overview, err := NewGetOverviewUseCase(repo, clock).Execute(context.Background(), uuid.New(), period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(overview.DailyTrend) != 2 {
		t.Fatalf("expected 2 daily points, got %d", len(overview.DailyTrend))
	}
	if overview.DailyTrend[0].Label != "2024-03-02" {
		t.Errorf("expected label 2024-03-02, got %s", overview.DailyTrend[0].Label)
	}
	if !overview.DailyTrend[1].Amount.Equal(decimal.NewFromInt(45)) {
		t.Errorf("expected second point 45, got %s", overview.DailyTrend[1].Amount)
	}
}

func TestGetOverviewUseCase_WeeklyTrendBuckets(t *testing.T) {
	today := date(2024, time.March, 15)
	clock := fixedClock{now: today}

	// Newest bucket covers the 7 days ending today: 2024-03-09 .. 2024-03-15.
	repo := &mockReportRepo{
		dailyExpensesFn: func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]DailyTotal, error) {
			if end.Equal(today) && start.Before(date(2024, time.March, 1)) {
				return []DailyTotal{
					{Date: date(2024, time.March, 9), Amount: decimal.NewFromInt(20)},
					{Date: date(2024, time.March, 15), Amount: decimal.NewFromInt(5)},
					{Date: date(2024, time.March, 8), Amount: decimal.NewFromInt(100)},
				}, nil
			}
			return nil, nil
		},
	}

	period := Period{Start: date(2024, time.March, 1), End: today}
	overview, err := NewGetOverviewUseCase(repo, clock).Execute(context.Background(), uuid.New(), period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trend := overview.WeeklyTrend
	if len(trend) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(trend))
	}

	newest := trend[7]
	if !newest.Date.Equal(date(2024, time.March, 9)) {
		t.Errorf("expected newest bucket to start 2024-03-09, got %v", newest.Date)
	}
	if !newest.Amount.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected newest bucket sum 25, got %s", newest.Amount)
	}

	// 2024-03-08 falls in the second-newest bucket, not the newest.
	second := trend[6]
	if !second.Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected second-newest bucket 100, got %s", second.Amount)
	}

	oldest := trend[0]
	if !oldest.Date.Equal(today.AddDate(0, 0, -6-7*7)) {
		t.Errorf("unexpected oldest bucket start %v", oldest.Date)
	}
	if !oldest.Amount.IsZero() {
		t.Errorf("expected zero-filled oldest bucket, got %s", oldest.Amount)
	}
}

func TestGetOverviewUseCase_MonthlyTrendBuckets(t *testing.T) {
	today := date(2024, time.June, 15)
	clock := fixedClock{now: today}

	repo := &mockReportRepo{}

	period := Period{Start: date(2024, time.June, 1), End: today}
	overview, err := NewGetOverviewUseCase(repo, clock).Execute(context.Background(), uuid.New(), period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(overview.MonthlyTrend) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(overview.MonthlyTrend))
	}
	if overview.MonthlyTrend[5].Label != "Jun 2024" {
		t.Errorf("expected newest label Jun 2024, got %s", overview.MonthlyTrend[5].Label)
	}
	// Anchors step back 30 days at a time: Jun 15 -> May 16 -> Apr 16 ->
	// Mar 17 -> Feb 16 -> Jan 17, normalized to the first of each month.
	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
		date(2024, time.April, 1),
		date(2024, time.May, 1),
		date(2024, time.June, 1),
	}
	for i, p := range overview.MonthlyTrend {
		if !p.Date.Equal(want[i]) {
			t.Errorf("bucket %d: expected %v, got %v", i, want[i], p.Date)
		}
	}
}

func TestGetOverviewUseCase_RecentTransactionLimit(t *testing.T) {
	today := date(2024, time.March, 15)
	clock := fixedClock{now: today}

	var gotLimit int
	repo := &mockReportRepo{
		recentFn: func(ctx context.Context, userID uuid.UUID, limit int) ([]LedgerEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	period := Period{Start: date(2024, time.March, 1), End: today}
	if _, err := NewGetOverviewUseCase(repo, clock).Execute(context.Background(), uuid.New(), period); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 5 {
		t.Errorf("expected recent transaction limit 5, got %d", gotLimit)
	}
}
