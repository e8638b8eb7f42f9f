// Package report contains the financial aggregation and reporting use cases.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

// ReportRepository defines the read side of the ledger used by the
// aggregation engine. Every query is scoped to one user id.
type ReportRepository interface {
	// GetBalance returns the signed lifetime sum over all transactions:
	// CREDIT contributes +amount, DEBIT contributes -amount.
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)

	// GetTypeTotal returns the amount sum for one transaction type within
	// [start, end], inclusive on both ends.
	GetTypeTotal(ctx context.Context, userID uuid.UUID, txType entity.TransactionType, start, end time.Time) (decimal.Decimal, error)

	// GetCategoryBreakdown returns DEBIT sums grouped by category name within
	// [start, end]. Categories with no matching transactions are absent.
	GetCategoryBreakdown(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]CategoryTotal, error)

	// GetCategorySpending returns the DEBIT sum for one category within [start, end].
	GetCategorySpending(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error)

	// GetDailyExpenses returns the DEBIT sum per calendar date within
	// [start, end], ascending, one row per date with at least one transaction.
	GetDailyExpenses(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]DailyTotal, error)

	// GetRecentTransactions returns the most recent transactions by date,
	// descending, annotated with category names.
	GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]LedgerEntry, error)

	// GetTransactionHistory returns every transaction for the user, newest first.
	GetTransactionHistory(ctx context.Context, userID uuid.UUID) ([]LedgerEntry, error)
}

// Shorthand for the two transaction polarities used throughout this package.
var (
	creditType = entity.TransactionTypeCredit
	debitType  = entity.TransactionTypeDebit
)

// CategoryTotal is a per-category expense sum.
type CategoryTotal struct {
	CategoryName string
	Amount       decimal.Decimal
}

// DailyTotal is the expense sum for one calendar date.
type DailyTotal struct {
	Date   time.Time
	Amount decimal.Decimal
}

// LedgerEntry is a transaction row annotated with its category name.
type LedgerEntry struct {
	ID           uuid.UUID
	Date         time.Time
	Type         entity.TransactionType
	CategoryName string
	Amount       decimal.Decimal
	Description  string
}
