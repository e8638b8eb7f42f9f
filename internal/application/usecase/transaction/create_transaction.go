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

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	Date        time.Time
	Description string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	reportCache     adapter.ReportCache
	alertNotify     *report.NotifyBudgetAlertsUseCase
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	reportCache adapter.ReportCache,
	alertNotify *report.NotifyBudgetAlertsUseCase,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		reportCache:     reportCache,
		alertNotify:     alertNotify,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	category, err := validateTransactionInput(ctx, uc.categoryRepo, input.UserID, input.Type, input.Amount, input.CategoryID, input.Date, input.Description)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Type,
		input.Amount,
		input.CategoryID,
		input.Date,
		input.Description,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	invalidateReportCache(ctx, uc.reportCache, input.UserID)

	// Spending writes can push a budget past its alert threshold. The check
	// is best-effort and never fails the write.
	if transaction.Type == entity.TransactionTypeDebit && uc.alertNotify != nil {
		if err := uc.alertNotify.Execute(ctx, input.UserID, input.CategoryID); err != nil {
			slog.Warn("Budget alert check failed",
				"user_id", input.UserID, "category_id", input.CategoryID, "error", err)
		}
	}

	return &CreateTransactionOutput{
		Transaction: toTransactionOutput(transaction, category),
	}, nil
}

// validateTransactionInput checks the shared field constraints for create and
// update, and resolves the category. The category must exist and be either a
// system category or one the user owns.
func validateTransactionInput(
	ctx context.Context,
	categoryRepo adapter.CategoryRepository,
	userID uuid.UUID,
	transactionType entity.TransactionType,
	amount decimal.Decimal,
	categoryID uuid.UUID,
	date time.Time,
	description string,
) (*entity.Category, error) {
	if !transactionType.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be CREDIT or DEBIT",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if len(description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	category, err := categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}

	if !category.VisibleTo(userID) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotVisible,
			"category does not belong to user",
			domainerror.ErrCategoryNotVisibleToUser,
		)
	}

	return category, nil
}

// invalidateReportCache drops the user's cached reports after a ledger write.
// Failures are logged, not returned; the next read recomputes from the store.
func invalidateReportCache(ctx context.Context, cache adapter.ReportCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("Report cache invalidation failed", "user_id", userID, "error", err)
	}
}
