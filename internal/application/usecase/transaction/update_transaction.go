// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/application/usecase/report"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction updates. All
// fields are replaced; partial updates are resolved by the caller.
type UpdateTransactionInput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	Date        time.Time
	Description string
}

// UpdateTransactionOutput represents the output of transaction updates.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	reportCache     adapter.ReportCache
	alertNotify     *report.NotifyBudgetAlertsUseCase
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	reportCache adapter.ReportCache,
	alertNotify *report.NotifyBudgetAlertsUseCase,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		reportCache:     reportCache,
		alertNotify:     alertNotify,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	if transaction.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	category, err := validateTransactionInput(ctx, uc.categoryRepo, input.UserID, input.Type, input.Amount, input.CategoryID, input.Date, input.Description)
	if err != nil {
		return nil, err
	}

	transaction.Type = input.Type
	transaction.Amount = input.Amount
	transaction.CategoryID = input.CategoryID
	transaction.Date = input.Date
	transaction.Description = input.Description
	transaction.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	invalidateReportCache(ctx, uc.reportCache, input.UserID)

	if transaction.Type == entity.TransactionTypeDebit && uc.alertNotify != nil {
		if err := uc.alertNotify.Execute(ctx, input.UserID, input.CategoryID); err != nil {
			slog.Warn("Budget alert check failed",
				"user_id", input.UserID, "category_id", input.CategoryID, "error", err)
		}
	}

	return &UpdateTransactionOutput{
		Transaction: toTransactionOutput(transaction, category),
	}, nil
}
