// Package report contains the financial aggregation and reporting use cases.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
)

// Export section titles, in contract order.
const (
	SectionHeader    = "FINANCIAL REPORT"
	SectionSummary   = "ACCOUNT SUMMARY"
	SectionBudgets   = "BUDGET ANALYSIS"
	SectionBreakdown = "CATEGORY BREAKDOWN"
	SectionInsights  = "INSIGHTS"
	SectionHistory   = "TRANSACTION HISTORY"
)

// Month-over-month direction labels.
const (
	DirectionIncrease = "INCREASE"
	DirectionDecrease = "DECREASE"
	DirectionNone     = "N/A"
)

// NoBudgetsMarker is emitted in place of budget rows when the user has no
// budgets for the month.
const NoBudgetsMarker = "No budgets configured for this month"

// ExportSection is one ordered block of the export document.
type ExportSection struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// ExportDocument is the sequential multi-section report. Section order and
// column order are the wire contract.
type ExportDocument struct {
	Sections []ExportSection
}

// WriteCSV renders the document to CSV: title row, optional column row,
// data rows, blank line between sections.
func (d *ExportDocument) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	for i, section := range d.Sections {
		if i > 0 {
			if err := cw.Write([]string{}); err != nil {
				return fmt.Errorf("failed to write section separator: %w", err)
			}
		}
		if err := cw.Write([]string{section.Title}); err != nil {
			return fmt.Errorf("failed to write section title: %w", err)
		}
		if len(section.Columns) > 0 {
			if err := cw.Write(section.Columns); err != nil {
				return fmt.Errorf("failed to write section columns: %w", err)
			}
		}
		for _, row := range section.Rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write section row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildExportDocument assembles the ordered export document from computed
// aggregates. Pure assembly, no I/O.
func BuildExportDocument(
	overview *Overview,
	comparisons []BudgetComparison,
	history []LedgerEntry,
	userEmail string,
	generatedAt time.Time,
) *ExportDocument {
	doc := &ExportDocument{Sections: make([]ExportSection, 0, 6)}

	doc.Sections = append(doc.Sections,
		headerSection(userEmail, generatedAt),
		summarySection(overview),
		budgetSection(comparisons),
		breakdownSection(overview),
		insightsSection(overview, comparisons),
		historySection(history),
	)

	return doc
}

func headerSection(userEmail string, generatedAt time.Time) ExportSection {
	return ExportSection{
		Title: SectionHeader,
		Rows: [][]string{
			{"Generated At", generatedAt.Format("2006-01-02 15:04:05")},
			{"User", userEmail},
		},
	}
}

func summarySection(overview *Overview) ExportSection {
	change, direction := monthOverMonthChange(overview.PeriodExpense, overview.LastMonthExpense)

	changeDisplay := DirectionNone
	if direction != DirectionNone {
		changeDisplay = change.StringFixed(1) + "% " + direction
	}

	return ExportSection{
		Title: SectionSummary,
		Rows: [][]string{
			{"Current Balance", overview.Balance.StringFixed(2)},
			{"Current Month Expense", overview.PeriodExpense.StringFixed(2)},
			{"Last Month Expense", overview.LastMonthExpense.StringFixed(2)},
			{"Current Month Income", overview.PeriodIncome.StringFixed(2)},
			{"Month-over-Month Change", changeDisplay},
		},
	}
}

func budgetSection(comparisons []BudgetComparison) ExportSection {
	section := ExportSection{
		Title:   SectionBudgets,
		Columns: []string{"Category", "Budget Limit", "Actual Spent", "Remaining", "Usage %", "Status"},
	}

	if len(comparisons) == 0 {
		section.Rows = [][]string{{NoBudgetsMarker}}
		return section
	}

	totalBudgeted := decimal.Zero
	totalSpent := decimal.Zero
	overCount := 0
	for _, c := range comparisons {
		totalBudgeted = totalBudgeted.Add(c.MonthlyLimit)
		totalSpent = totalSpent.Add(c.ActualSpent)
		if c.Percentage.GreaterThan(dangerThreshold) {
			overCount++
		}

		section.Rows = append(section.Rows, []string{
			c.CategoryName,
			c.MonthlyLimit.StringFixed(2),
			c.ActualSpent.StringFixed(2),
			c.Remaining.StringFixed(2),
			c.Percentage.StringFixed(1),
			c.Status,
		})
	}

	section.Rows = append(section.Rows,
		[]string{"Total Budgeted", totalBudgeted.StringFixed(2)},
		[]string{"Total Spent", totalSpent.StringFixed(2)},
		[]string{"Categories Over Budget", fmt.Sprintf("%d", overCount)},
		[]string{"Overall Usage %", usagePercentage(totalSpent, totalBudgeted).StringFixed(1)},
	)

	return section
}

func breakdownSection(overview *Overview) ExportSection {
	section := ExportSection{
		Title:   SectionBreakdown,
		Columns: []string{"Category", "Amount", "% of Total"},
	}

	for _, ct := range overview.CategoryBreakdown {
		section.Rows = append(section.Rows, []string{
			ct.CategoryName,
			ct.Amount.StringFixed(2),
			usagePercentage(ct.Amount, overview.PeriodExpense).StringFixed(1),
		})
	}

	return section
}

func insightsSection(overview *Overview, comparisons []BudgetComparison) ExportSection {
	section := ExportSection{Title: SectionInsights}

	section.Rows = append(section.Rows, []string{spendingTrendInsight(overview)})
	section.Rows = append(section.Rows, []string{budgetHealthInsight(comparisons)})

	if overview.PeriodIncome.IsPositive() {
		rate := overview.PeriodIncome.Sub(overview.PeriodExpense).
			Div(overview.PeriodIncome).Mul(hundred).Round(1)
		section.Rows = append(section.Rows, []string{
			fmt.Sprintf("Savings rate for this period: %s%%.", rate.StringFixed(1)),
		})
	}

	if top, ok := topSpendingCategory(overview.CategoryBreakdown); ok {
		section.Rows = append(section.Rows, []string{
			fmt.Sprintf("Top spending category: %s (%s).", top.CategoryName, top.Amount.StringFixed(2)),
		})
	}

	return section
}

func historySection(history []LedgerEntry) ExportSection {
	section := ExportSection{
		Title:   SectionHistory,
		Columns: []string{"Date", "Type", "Category", "Amount"},
	}

	for _, entry := range history {
		section.Rows = append(section.Rows, []string{
			entry.Date.Format(DateLayout),
			string(entry.Type),
			entry.CategoryName,
			entry.Amount.StringFixed(2),
		})
	}

	return section
}

// monthOverMonthChange returns the absolute percentage change of current vs
// last month expense and a direction label. A zero or negative baseline
// yields N/A instead of dividing by zero.
func monthOverMonthChange(current, last decimal.Decimal) (decimal.Decimal, string) {
	if !last.IsPositive() {
		return decimal.Zero, DirectionNone
	}

	change := current.Sub(last).Div(last).Mul(hundred).Round(1)
	if change.IsNegative() {
		return change.Abs(), DirectionDecrease
	}
	return change, DirectionIncrease
}

func spendingTrendInsight(overview *Overview) string {
	change, direction := monthOverMonthChange(overview.PeriodExpense, overview.LastMonthExpense)
	switch direction {
	case DirectionIncrease:
		return fmt.Sprintf("Spending increased by %s%% compared to last month.", change.StringFixed(1))
	case DirectionDecrease:
		return fmt.Sprintf("Spending decreased by %s%% compared to last month.", change.StringFixed(1))
	default:
		return "No spending recorded last month to compare against."
	}
}

func budgetHealthInsight(comparisons []BudgetComparison) string {
	overCount := 0
	for _, c := range comparisons {
		if c.Percentage.GreaterThan(dangerThreshold) {
			overCount++
		}
	}

	switch overCount {
	case 0:
		return "All budget categories are within their limits."
	case 1:
		return "1 category is over budget."
	default:
		return fmt.Sprintf("%d categories are over budget.", overCount)
	}
}

func topSpendingCategory(breakdown []CategoryTotal) (CategoryTotal, bool) {
	if len(breakdown) == 0 {
		return CategoryTotal{}, false
	}

	top := breakdown[0]
	for _, ct := range breakdown[1:] {
		if ct.Amount.GreaterThan(top.Amount) {
			top = ct
		}
	}
	return top, true
}

// ExportReportUseCase produces the full export document for a user. The
// aggregation window is always the default dashboard window, first of the
// current month through today.
type ExportReportUseCase struct {
	overviewUseCase     *GetOverviewUseCase
	budgetStatusUseCase *GetBudgetStatusUseCase
	reportRepo          ReportRepository
	userRepo            adapter.UserRepository
	clock               adapter.Clock
}

// NewExportReportUseCase creates a new ExportReportUseCase instance.
func NewExportReportUseCase(
	overviewUseCase *GetOverviewUseCase,
	budgetStatusUseCase *GetBudgetStatusUseCase,
	reportRepo ReportRepository,
	userRepo adapter.UserRepository,
	clock adapter.Clock,
) *ExportReportUseCase {
	return &ExportReportUseCase{
		overviewUseCase:     overviewUseCase,
		budgetStatusUseCase: budgetStatusUseCase,
		reportRepo:          reportRepo,
		userRepo:            userRepo,
		clock:               clock,
	}
}

// Execute computes every aggregate and assembles the export document.
func (uc *ExportReportUseCase) Execute(ctx context.Context, userID uuid.UUID) (*ExportDocument, error) {
	now := uc.clock.Now()
	today := truncateToDate(now)

	period, err := ResolvePeriod(PeriodRequest{}, today)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	overview, err := uc.overviewUseCase.Execute(ctx, userID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to compute overview: %w", err)
	}

	comparisons, err := uc.budgetStatusUseCase.Execute(ctx, userID, int(today.Month()), today.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to compute budget status: %w", err)
	}

	history, err := uc.reportRepo.GetTransactionHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction history: %w", err)
	}

	return BuildExportDocument(overview, comparisons, history, user.Email, now), nil
}
