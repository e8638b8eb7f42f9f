// Package report contains the financial aggregation and reporting use cases.
package report

import (
	"github.com/shopspring/decimal"
)

// BudgetAlert flags a budgeted category at or past its warning threshold.
type BudgetAlert struct {
	CategoryName string
	Percentage   decimal.Decimal
	Spent        decimal.Decimal
	Limit        decimal.Decimal
	Status       string // danger past 100%, warning otherwise
}

// EvaluateBudgetAlerts emits one alert per comparison whose usage percentage
// is at least 80. The result preserves the input order.
func EvaluateBudgetAlerts(comparisons []BudgetComparison) []BudgetAlert {
	alerts := make([]BudgetAlert, 0)
	for _, c := range comparisons {
		if c.Percentage.LessThan(warningThreshold) {
			continue
		}

		status := BudgetStatusWarning
		if c.Percentage.GreaterThan(dangerThreshold) {
			status = BudgetStatusDanger
		}

		alerts = append(alerts, BudgetAlert{
			CategoryName: c.CategoryName,
			Percentage:   c.Percentage,
			Spent:        c.ActualSpent,
			Limit:        c.MonthlyLimit,
			Status:       status,
		})
	}
	return alerts
}
