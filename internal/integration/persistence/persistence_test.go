package persistence

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fintrack/backend/internal/domain/entity"
	"github.com/fintrack/backend/internal/integration/persistence/model"
)

// openTestDB opens a fresh in-memory SQLite database with the full schema.
// TranslateError is enabled to match the production connection, so unique
// index violations surface as gorm.ErrDuplicatedKey here too.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
		&model.EmailQueueModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()

	user := entity.NewUser(email, "Test User", "hash")
	if err := db.Create(model.UserFromEntity(user)).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, userID *uuid.UUID, name string, catType entity.CategoryType) *entity.Category {
	t.Helper()

	category := entity.NewCategory(name, catType, userID, "#808080", "tag", nil)
	if err := db.Create(model.CategoryFromEntity(category)).Error; err != nil {
		t.Fatalf("failed to seed category %s: %v", name, err)
	}
	return category
}

func seedTransaction(t *testing.T, db *gorm.DB, userID, categoryID uuid.UUID, txType entity.TransactionType, amount string, date time.Time) *entity.Transaction {
	t.Helper()

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("bad amount %q: %v", amount, err)
	}

	txn := entity.NewTransaction(userID, txType, amt, categoryID, date, "seeded")
	if err := db.Create(model.TransactionFromEntity(txn)).Error; err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	return txn
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
