package dto

import (
	"time"

	"github.com/fintrack/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=DEBIT CREDIT"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=255"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=DEBIT CREDIT"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=255"`
}

// TransactionCategoryResponse represents category information in transaction responses.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                       `json:"id"`
	UserID      string                       `json:"user_id"`
	Type        string                       `json:"type"`
	Amount      string                       `json:"amount"`
	CategoryID  string                       `json:"category_id"`
	Category    *TransactionCategoryResponse `json:"category,omitempty"`
	Date        string                       `json:"date"`
	Description string                       `json:"description"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:          txn.ID.String(),
		UserID:      txn.UserID.String(),
		Type:        string(txn.Type),
		Amount:      txn.Amount.StringFixed(2),
		CategoryID:  txn.CategoryID.String(),
		Date:        txn.Date.Format("2006-01-02"),
		Description: txn.Description,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}

	if txn.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    txn.Category.ID.String(),
			Name:  txn.Category.Name,
			Color: txn.Category.Color,
			Icon:  txn.Category.Icon,
			Type:  string(txn.Category.Type),
		}
	}

	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, t := range output.Transactions {
		transactions[i] = ToTransactionResponse(t)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}
