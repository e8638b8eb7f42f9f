package dto

import (
	"github.com/fintrack/backend/internal/application/usecase/report"
)

// TrendPointResponse represents one bucket of a spending trend series.
type TrendPointResponse struct {
	Date   string  `json:"date"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// LedgerEntryResponse represents a transaction row in report responses.
type LedgerEntryResponse struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
}

// BudgetComparisonResponse represents a budget-vs-actual row in report responses.
type BudgetComparisonResponse struct {
	BudgetID     string  `json:"budget_id"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	MonthlyLimit float64 `json:"monthly_limit"`
	ActualSpent  float64 `json:"actual_spent"`
	Remaining    float64 `json:"remaining"`
	Percentage   float64 `json:"percentage"`
	Status       string  `json:"status"`
}

// BudgetAlertResponse represents a budget threshold alert in report responses.
type BudgetAlertResponse struct {
	CategoryName string  `json:"category_name"`
	Percentage   float64 `json:"percentage"`
	Spent        float64 `json:"spent"`
	Limit        float64 `json:"limit"`
	Status       string  `json:"status"`
}

// DashboardResponse represents the dashboard view-model in API responses.
type DashboardResponse struct {
	Balance            float64                    `json:"balance"`
	PeriodExpense      float64                    `json:"period_expense"`
	PeriodIncome       float64                    `json:"period_income"`
	LastMonthExpense   float64                    `json:"last_month_expense"`
	CategoryLabels     []string                   `json:"category_labels"`
	CategoryValues     []float64                  `json:"category_values"`
	RecentTransactions []LedgerEntryResponse      `json:"recent_transactions"`
	Budgets            []BudgetComparisonResponse `json:"budgets"`
	TotalBudgeted      float64                    `json:"total_budgeted"`
	TotalSpent         float64                    `json:"total_spent"`
	Alerts             []BudgetAlertResponse      `json:"alerts"`
	DailyTrend         []TrendPointResponse       `json:"daily_trend"`
	WeeklyTrend        []TrendPointResponse       `json:"weekly_trend"`
	MonthlyTrend       []TrendPointResponse       `json:"monthly_trend"`
	PeriodStart        string                     `json:"period_start"`
	PeriodEnd          string                     `json:"period_end"`
}

// BudgetStatusResponse represents the response for the budget status endpoint.
type BudgetStatusResponse struct {
	Budgets []BudgetComparisonResponse `json:"budgets"`
	Alerts  []BudgetAlertResponse      `json:"alerts"`
}

func toTrendPointResponses(points []report.TrendPoint) []TrendPointResponse {
	out := make([]TrendPointResponse, len(points))
	for i, p := range points {
		amount, _ := p.Amount.Float64()
		out[i] = TrendPointResponse{
			Date:   p.Date.Format(report.DateLayout),
			Label:  p.Label,
			Amount: amount,
		}
	}
	return out
}

func toLedgerEntryResponses(entries []report.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		amount, _ := e.Amount.Float64()
		out[i] = LedgerEntryResponse{
			ID:           e.ID.String(),
			Date:         e.Date.Format(report.DateLayout),
			Type:         string(e.Type),
			CategoryName: e.CategoryName,
			Amount:       amount,
			Description:  e.Description,
		}
	}
	return out
}

func toBudgetComparisonResponses(comparisons []report.BudgetComparison) []BudgetComparisonResponse {
	out := make([]BudgetComparisonResponse, len(comparisons))
	for i, c := range comparisons {
		limit, _ := c.MonthlyLimit.Float64()
		spent, _ := c.ActualSpent.Float64()
		remaining, _ := c.Remaining.Float64()
		percentage, _ := c.Percentage.Float64()
		out[i] = BudgetComparisonResponse{
			BudgetID:     c.BudgetID.String(),
			CategoryID:   c.CategoryID.String(),
			CategoryName: c.CategoryName,
			MonthlyLimit: limit,
			ActualSpent:  spent,
			Remaining:    remaining,
			Percentage:   percentage,
			Status:       c.Status,
		}
	}
	return out
}

func toBudgetAlertResponses(alerts []report.BudgetAlert) []BudgetAlertResponse {
	out := make([]BudgetAlertResponse, len(alerts))
	for i, a := range alerts {
		percentage, _ := a.Percentage.Float64()
		spent, _ := a.Spent.Float64()
		limit, _ := a.Limit.Float64()
		out[i] = BudgetAlertResponse{
			CategoryName: a.CategoryName,
			Percentage:   percentage,
			Spent:        spent,
			Limit:        limit,
			Status:       a.Status,
		}
	}
	return out
}

// ToDashboardResponse converts a DashboardView to a DashboardResponse DTO.
func ToDashboardResponse(view *report.DashboardView) DashboardResponse {
	balance, _ := view.Balance.Float64()
	periodExpense, _ := view.PeriodExpense.Float64()
	periodIncome, _ := view.PeriodIncome.Float64()
	lastMonthExpense, _ := view.LastMonthExpense.Float64()
	totalBudgeted, _ := view.TotalBudgeted.Float64()
	totalSpent, _ := view.TotalSpent.Float64()

	values := make([]float64, len(view.CategoryValues))
	for i, v := range view.CategoryValues {
		values[i], _ = v.Float64()
	}

	return DashboardResponse{
		Balance:            balance,
		PeriodExpense:      periodExpense,
		PeriodIncome:       periodIncome,
		LastMonthExpense:   lastMonthExpense,
		CategoryLabels:     view.CategoryLabels,
		CategoryValues:     values,
		RecentTransactions: toLedgerEntryResponses(view.RecentTransactions),
		Budgets:            toBudgetComparisonResponses(view.Budgets),
		TotalBudgeted:      totalBudgeted,
		TotalSpent:         totalSpent,
		Alerts:             toBudgetAlertResponses(view.Alerts),
		DailyTrend:         toTrendPointResponses(view.DailyTrend),
		WeeklyTrend:        toTrendPointResponses(view.WeeklyTrend),
		MonthlyTrend:       toTrendPointResponses(view.MonthlyTrend),
		PeriodStart:        view.PeriodStart,
		PeriodEnd:          view.PeriodEnd,
	}
}

// ToBudgetStatusResponse converts budget comparisons and alerts to a BudgetStatusResponse DTO.
func ToBudgetStatusResponse(comparisons []report.BudgetComparison, alerts []report.BudgetAlert) BudgetStatusResponse {
	return BudgetStatusResponse{
		Budgets: toBudgetComparisonResponses(comparisons),
		Alerts:  toBudgetAlertResponses(alerts),
	}
}
