// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/application/usecase/report"
	"github.com/fintrack/backend/internal/domain/entity"
)

// reportRepository implements the report.ReportRepository interface with
// aggregate SQL over the transactions table. All queries use portable SQL
// so the same repository runs against Postgres and the SQLite test store.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *gorm.DB) report.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// GetBalance returns the lifetime signed sum over all of the user's
// transactions: CREDIT adds, DEBIT subtracts.
func (r *reportRepository) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Balance decimal.Decimal `gorm:"column:balance"`
	}

	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0) as balance",
			string(entity.TransactionTypeCredit)).
		Where("user_id = ?", userID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}

	return result.Balance, nil
}

// GetTypeTotal returns the amount sum for one transaction type within
// [start, end], inclusive.
func (r *reportRepository) GetTypeTotal(ctx context.Context, userID uuid.UUID, txType entity.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal `gorm:"column:total"`
	}

	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?", userID, string(txType), start, end).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get type total: %w", err)
	}

	return result.Total, nil
}

// GetCategoryBreakdown returns DEBIT sums grouped by category name within
// [start, end], largest first. Categories without spending are absent.
func (r *reportRepository) GetCategoryBreakdown(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]report.CategoryTotal, error) {
	var results []struct {
		CategoryName string          `gorm:"column:category_name"`
		Amount       decimal.Decimal `gorm:"column:amount"`
	}

	query := `
		SELECT
			c.name as category_name,
			SUM(t.amount) as amount
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ?
			AND t.type = ?
			AND t.date >= ?
			AND t.date <= ?
		GROUP BY c.name
		ORDER BY amount DESC
	`

	err := r.db.WithContext(ctx).
		Raw(query, userID, string(entity.TransactionTypeDebit), start, end).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	breakdown := make([]report.CategoryTotal, len(results))
	for i, res := range results {
		breakdown[i] = report.CategoryTotal{
			CategoryName: res.CategoryName,
			Amount:       res.Amount,
		}
	}

	return breakdown, nil
}

// GetCategorySpending returns the DEBIT sum for one category within [start, end].
func (r *reportRepository) GetCategorySpending(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal `gorm:"column:total"`
	}

	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, categoryID, string(entity.TransactionTypeDebit), start, end).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get category spending: %w", err)
	}

	return result.Total, nil
}

// GetDailyExpenses returns the DEBIT sum per calendar date within
// [start, end], ascending, one row per date with spending.
func (r *reportRepository) GetDailyExpenses(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]report.DailyTotal, error) {
	var results []struct {
		Date   time.Time       `gorm:"column:date"`
		Amount decimal.Decimal `gorm:"column:amount"`
	}

	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("date, SUM(amount) as amount").
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, string(entity.TransactionTypeDebit), start, end).
		Group("date").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily expenses: %w", err)
	}

	totals := make([]report.DailyTotal, len(results))
	for i, res := range results {
		totals[i] = report.DailyTotal{
			Date:   res.Date,
			Amount: res.Amount,
		}
	}

	return totals, nil
}

// GetRecentTransactions returns the most recent transactions by date,
// descending, annotated with category names.
func (r *reportRepository) GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]report.LedgerEntry, error) {
	return r.ledgerEntries(ctx, userID, limit)
}

// GetTransactionHistory returns every transaction for the user, newest first.
func (r *reportRepository) GetTransactionHistory(ctx context.Context, userID uuid.UUID) ([]report.LedgerEntry, error) {
	return r.ledgerEntries(ctx, userID, 0)
}

func (r *reportRepository) ledgerEntries(ctx context.Context, userID uuid.UUID, limit int) ([]report.LedgerEntry, error) {
	var results []struct {
		ID           uuid.UUID       `gorm:"column:id"`
		Date         time.Time       `gorm:"column:date"`
		Type         string          `gorm:"column:type"`
		CategoryName string          `gorm:"column:category_name"`
		Amount       decimal.Decimal `gorm:"column:amount"`
		Description  string          `gorm:"column:description"`
	}

	query := r.db.WithContext(ctx).
		Table("transactions t").
		Select("t.id, t.date, t.type, c.name as category_name, t.amount, t.description").
		Joins("JOIN categories c ON t.category_id = c.id").
		Where("t.user_id = ?", userID).
		Order("t.date DESC, t.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	entries := make([]report.LedgerEntry, len(results))
	for i, res := range results {
		entries[i] = report.LedgerEntry{
			ID:           res.ID,
			Date:         res.Date,
			Type:         entity.TransactionType(res.Type),
			CategoryName: res.CategoryName,
			Amount:       res.Amount,
			Description:  res.Description,
		}
	}

	return entries, nil
}
