package dto

import (
	"github.com/fintrack/backend/internal/application/usecase/budget"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID   string  `json:"category_id" binding:"required,uuid"`
	MonthlyLimit float64 `json:"monthly_limit" binding:"required,gte=0"`
	Month        int     `json:"month" binding:"required,min=1,max=12"`
	Year         int     `json:"year" binding:"required,min=2000,max=2100"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	MonthlyLimit float64 `json:"monthly_limit" binding:"required,gte=0"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	MonthlyLimit string `json:"monthly_limit"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a BudgetOutput to a BudgetResponse DTO.
func ToBudgetResponse(b *budget.BudgetOutput) BudgetResponse {
	return BudgetResponse{
		ID:           b.ID.String(),
		UserID:       b.UserID.String(),
		CategoryID:   b.CategoryID.String(),
		CategoryName: b.CategoryName,
		MonthlyLimit: b.MonthlyLimit.StringFixed(2),
		Month:        b.Month,
		Year:         b.Year,
	}
}

// ToBudgetListResponse converts a ListBudgetsOutput to a BudgetListResponse DTO.
func ToBudgetListResponse(output *budget.ListBudgetsOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, len(output.Budgets))
	for i, b := range output.Budgets {
		budgets[i] = ToBudgetResponse(b)
	}
	return BudgetListResponse{Budgets: budgets}
}
