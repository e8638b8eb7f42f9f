package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

func exportFixture() (*Overview, []BudgetComparison, []LedgerEntry) {
	overview := &Overview{
		Period:           Period{Start: date(2024, time.March, 1), End: date(2024, time.March, 15)},
		Balance:          decimal.NewFromInt(1250),
		PeriodExpense:    decimal.NewFromInt(400),
		PeriodIncome:     decimal.NewFromInt(900),
		LastMonthExpense: decimal.NewFromInt(320),
		CategoryBreakdown: []CategoryTotal{
			{CategoryName: "Groceries", Amount: decimal.NewFromInt(300)},
			{CategoryName: "Transport", Amount: decimal.NewFromInt(100)},
		},
	}
	comparisons := []BudgetComparison{
		{
			CategoryName: "Groceries",
			MonthlyLimit: decimal.NewFromInt(500),
			ActualSpent:  decimal.NewFromInt(300),
			Remaining:    decimal.NewFromInt(200),
			Percentage:   decimal.NewFromInt(60),
			Status:       BudgetStatusSuccess,
		},
		{
			CategoryName: "Transport",
			MonthlyLimit: decimal.NewFromInt(80),
			ActualSpent:  decimal.NewFromInt(100),
			Remaining:    decimal.NewFromInt(-20),
			Percentage:   decimal.NewFromInt(125),
			Status:       BudgetStatusDanger,
		},
	}
	history := []LedgerEntry{
		{Date: date(2024, time.March, 14), Type: entity.TransactionTypeDebit, CategoryName: "Groceries", Amount: decimal.NewFromInt(50)},
		{Date: date(2024, time.March, 10), Type: entity.TransactionTypeCredit, CategoryName: "Salary", Amount: decimal.NewFromInt(900)},
	}
	return overview, comparisons, history
}

func TestBuildExportDocument_SectionOrder(t *testing.T) {
	overview, comparisons, history := exportFixture()
	doc := BuildExportDocument(overview, comparisons, history, "user@example.com", date(2024, time.March, 15))

	want := []string{
		SectionHeader,
		SectionSummary,
		SectionBudgets,
		SectionBreakdown,
		SectionInsights,
		SectionHistory,
	}
	if len(doc.Sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(doc.Sections))
	}
	for i, title := range want {
		if doc.Sections[i].Title != title {
			t.Errorf("section %d: expected %s, got %s", i, title, doc.Sections[i].Title)
		}
	}
}

func TestBuildExportDocument_Summary(t *testing.T) {
	overview, comparisons, history := exportFixture()
	doc := BuildExportDocument(overview, comparisons, history, "user@example.com", date(2024, time.March, 15))

	summary := doc.Sections[1]
	rows := map[string]string{}
	for _, row := range summary.Rows {
		rows[row[0]] = row[1]
	}

	if rows["Current Balance"] != "1250.00" {
		t.Errorf("expected balance 1250.00, got %s", rows["Current Balance"])
	}
	if rows["Current Month Income"] != "900.00" {
		t.Errorf("expected income 900.00, got %s", rows["Current Month Income"])
	}
	// 400 vs 320 is a 25% increase.
	if rows["Month-over-Month Change"] != "25.0% INCREASE" {
		t.Errorf("unexpected change row: %s", rows["Month-over-Month Change"])
	}
}

func TestBuildExportDocument_MonthOverMonthLabels(t *testing.T) {
	overview, comparisons, history := exportFixture()

	t.Run("decrease reports absolute change", func(t *testing.T) {
		overview.PeriodExpense = decimal.NewFromInt(240)
		doc := BuildExportDocument(overview, comparisons, history, "u@e.com", date(2024, time.March, 15))
		got := findRow(t, doc.Sections[1], "Month-over-Month Change")
		if got != "25.0% DECREASE" {
			t.Errorf("expected 25.0%% DECREASE, got %s", got)
		}
	})

	t.Run("no baseline yields N/A", func(t *testing.T) {
		overview.LastMonthExpense = decimal.Zero
		doc := BuildExportDocument(overview, comparisons, history, "u@e.com", date(2024, time.March, 15))
		got := findRow(t, doc.Sections[1], "Month-over-Month Change")
		if got != DirectionNone {
			t.Errorf("expected N/A, got %s", got)
		}
	})
}

func findRow(t *testing.T, section ExportSection, key string) string {
	t.Helper()
	for _, row := range section.Rows {
		if len(row) >= 2 && row[0] == key {
			return row[1]
		}
	}
	t.Fatalf("row %q not found in section %s", key, section.Title)
	return ""
}

func TestBuildExportDocument_BudgetSection(t *testing.T) {
	overview, comparisons, history := exportFixture()
	doc := BuildExportDocument(overview, comparisons, history, "u@e.com", date(2024, time.March, 15))

	budgets := doc.Sections[2]
	wantColumns := []string{"Category", "Budget Limit", "Actual Spent", "Remaining", "Usage %", "Status"}
	for i, col := range wantColumns {
		if budgets.Columns[i] != col {
			t.Errorf("column %d: expected %s, got %s", i, col, budgets.Columns[i])
		}
	}

	// Two budget rows followed by four summary rows.
	if len(budgets.Rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(budgets.Rows))
	}
	first := budgets.Rows[0]
	if first[0] != "Groceries" || first[1] != "500.00" || first[4] != "60.0" || first[5] != BudgetStatusSuccess {
		t.Errorf("unexpected first budget row: %v", first)
	}
	if findRow(t, budgets, "Total Budgeted") != "580.00" {
		t.Error("unexpected total budgeted")
	}
	if findRow(t, budgets, "Total Spent") != "400.00" {
		t.Error("unexpected total spent")
	}
	if findRow(t, budgets, "Categories Over Budget") != "1" {
		t.Error("unexpected over budget count")
	}
	// 400 / 580 = 69.0%.
	if findRow(t, budgets, "Overall Usage %") != "69.0" {
		t.Error("unexpected overall usage")
	}
}

func TestBuildExportDocument_NoBudgets(t *testing.T) {
	overview, _, history := exportFixture()
	doc := BuildExportDocument(overview, nil, history, "u@e.com", date(2024, time.March, 15))

	budgets := doc.Sections[2]
	if len(budgets.Rows) != 1 || budgets.Rows[0][0] != NoBudgetsMarker {
		t.Errorf("expected single marker row, got %v", budgets.Rows)
	}
}

func TestBuildExportDocument_BreakdownPercentages(t *testing.T) {
	overview, comparisons, history := exportFixture()
	doc := BuildExportDocument(overview, comparisons, history, "u@e.com", date(2024, time.March, 15))

	breakdown := doc.Sections[3]
	if len(breakdown.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(breakdown.Rows))
	}
	if breakdown.Rows[0][2] != "75.0" {
		t.Errorf("expected Groceries at 75.0%%, got %s", breakdown.Rows[0][2])
	}
	if breakdown.Rows[1][2] != "25.0" {
		t.Errorf("expected Transport at 25.0%%, got %s", breakdown.Rows[1][2])
	}
}

func TestBuildExportDocument_Insights(t *testing.T) {
	overview, comparisons, history := exportFixture()
	doc := BuildExportDocument(overview, comparisons, history, "u@e.com", date(2024, time.March, 15))

	insights := make([]string, 0)
	for _, row := range doc.Sections[4].Rows {
		insights = append(insights, row[0])
	}

	want := []string{
		"Spending increased by 25.0% compared to last month.",
		"1 category is over budget.",
		// (900 - 400) / 900 = 55.6%.
		"Savings rate for this period: 55.6%.",
		"Top spending category: Groceries (300.00).",
	}
	if len(insights) != len(want) {
		t.Fatalf("expected %d insights, got %d: %v", len(want), len(insights), insights)
	}
	for i, w := range want {
		if insights[i] != w {
			t.Errorf("insight %d: expected %q, got %q", i, w, insights[i])
		}
	}
}

func TestBuildExportDocument_InsightsOmitted(t *testing.T) {
	overview, _, history := exportFixture()
	overview.PeriodIncome = decimal.Zero
	overview.CategoryBreakdown = nil

	doc := BuildExportDocument(overview, nil, history, "u@e.com", date(2024, time.March, 15))

	for _, row := range doc.Sections[4].Rows {
		if strings.HasPrefix(row[0], "Savings rate") {
			t.Error("savings rate should be omitted with zero income")
		}
		if strings.HasPrefix(row[0], "Top spending") {
			t.Error("top category should be omitted with empty breakdown")
		}
	}
}

func TestBuildExportDocument_History(t *testing.T) {
	overview, comparisons, history := exportFixture()
	doc := BuildExportDocument(overview, comparisons, history, "u@e.com", date(2024, time.March, 15))

	section := doc.Sections[5]
	wantColumns := []string{"Date", "Type", "Category", "Amount"}
	for i, col := range wantColumns {
		if section.Columns[i] != col {
			t.Errorf("column %d: expected %s, got %s", i, col, section.Columns[i])
		}
	}
	if len(section.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(section.Rows))
	}
	first := section.Rows[0]
	if first[0] != "2024-03-14" || first[1] != "DEBIT" || first[2] != "Groceries" || first[3] != "50.00" {
		t.Errorf("unexpected first history row: %v", first)
	}
}

func TestExportDocument_WriteCSV(t *testing.T) {
	doc := &ExportDocument{
		Sections: []ExportSection{
			{Title: "ONE", Rows: [][]string{{"a", "b"}}},
			{Title: "TWO", Columns: []string{"X", "Y"}, Rows: [][]string{{"1", "2"}}},
		},
	}

	var sb strings.Builder
	if err := doc.WriteCSV(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "ONE\na,b\n\nTWO\nX,Y\n1,2\n"
	if sb.String() != want {
		t.Errorf("unexpected csv output:\n%q\nwant:\n%q", sb.String(), want)
	}
}
