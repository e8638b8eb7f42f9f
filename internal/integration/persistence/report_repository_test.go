package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

func TestReportRepository_GetBalance(t *testing.T) {
	db := openTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "balance@example.com")
	salary := seedCategory(t, db, &user.ID, "Salary", entity.CategoryTypeCredit)
	food := seedCategory(t, db, &user.ID, "Food", entity.CategoryTypeDebit)

	t.Run("returns zero when there are no transactions", func(t *testing.T) {
		balance, err := repo.GetBalance(ctx, user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !balance.IsZero() {
			t.Errorf("expected zero balance, got %s", balance)
		}
	})

	t.Run("credits add and debits subtract", func(t *testing.T) {
		seedTransaction(t, db, user.ID, salary.ID, entity.TransactionTypeCredit, "3000.00", day(2026, time.March, 1))
		seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "450.25", day(2026, time.March, 5))
		seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "49.75", day(2026, time.March, 6))

		balance, err := repo.GetBalance(ctx, user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := decimal.NewFromFloat(2500.00); !balance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, balance)
		}
	})

	t.Run("ignores transactions from other users", func(t *testing.T) {
		other := seedUser(t, db, "other@example.com")
		otherCat := seedCategory(t, db, &other.ID, "Other Salary", entity.CategoryTypeCredit)
		seedTransaction(t, db, other.ID, otherCat.ID, entity.TransactionTypeCredit, "9999.99", day(2026, time.March, 1))

		balance, err := repo.GetBalance(ctx, user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := decimal.NewFromFloat(2500.00); !balance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, balance)
		}
	})
}

func TestReportRepository_GetTypeTotal(t *testing.T) {
	db := openTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "totals@example.com")
	food := seedCategory(t, db, &user.ID, "Food", entity.CategoryTypeDebit)
	salary := seedCategory(t, db, &user.ID, "Salary", entity.CategoryTypeCredit)

	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "100.00", day(2026, time.April, 1))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "50.00", day(2026, time.April, 30))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "75.00", day(2026, time.May, 1))
	seedTransaction(t, db, user.ID, salary.ID, entity.TransactionTypeCredit, "2000.00", day(2026, time.April, 15))

	t.Run("sums only the requested type", func(t *testing.T) {
		total, err := repo.GetTypeTotal(ctx, user.ID, entity.TransactionTypeCredit, day(2026, time.April, 1), day(2026, time.April, 30))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := decimal.NewFromInt(2000); !total.Equal(want) {
			t.Errorf("expected %s, got %s", want, total)
		}
	})

	t.Run("period bounds are inclusive", func(t *testing.T) {
		total, err := repo.GetTypeTotal(ctx, user.ID, entity.TransactionTypeDebit, day(2026, time.April, 1), day(2026, time.April, 30))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := decimal.NewFromInt(150); !total.Equal(want) {
			t.Errorf("expected %s, got %s", want, total)
		}
	})

	t.Run("excludes transactions outside the period", func(t *testing.T) {
		total, err := repo.GetTypeTotal(ctx, user.ID, entity.TransactionTypeDebit, day(2026, time.May, 1), day(2026, time.May, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := decimal.NewFromInt(75); !total.Equal(want) {
			t.Errorf("expected %s, got %s", want, total)
		}
	})
}

func TestReportRepository_GetCategoryBreakdown(t *testing.T) {
	db := openTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "breakdown@example.com")
	food := seedCategory(t, db, &user.ID, "Food", entity.CategoryTypeDebit)
	rent := seedCategory(t, db, &user.ID, "Rent", entity.CategoryTypeDebit)
	seedCategory(t, db, &user.ID, "Hobbies", entity.CategoryTypeDebit)
	salary := seedCategory(t, db, &user.ID, "Salary", entity.CategoryTypeCredit)

	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "120.00", day(2026, time.June, 3))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "80.00", day(2026, time.June, 10))
	seedTransaction(t, db, user.ID, rent.ID, entity.TransactionTypeDebit, "1500.00", day(2026, time.June, 1))
	seedTransaction(t, db, user.ID, salary.ID, entity.TransactionTypeCredit, "4000.00", day(2026, time.June, 1))

	breakdown, err := repo.GetCategoryBreakdown(ctx, user.ID, day(2026, time.June, 1), day(2026, time.June, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(breakdown) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(breakdown))
	}
	if breakdown[0].CategoryName != "Rent" {
		t.Errorf("expected largest category first, got %s", breakdown[0].CategoryName)
	}
	if want := decimal.NewFromInt(1500); !breakdown[0].Amount.Equal(want) {
		t.Errorf("expected Rent total %s, got %s", want, breakdown[0].Amount)
	}
	if breakdown[1].CategoryName != "Food" {
		t.Errorf("expected Food second, got %s", breakdown[1].CategoryName)
	}
	if want := decimal.NewFromInt(200); !breakdown[1].Amount.Equal(want) {
		t.Errorf("expected Food total %s, got %s", want, breakdown[1].Amount)
	}
}

func TestReportRepository_GetCategorySpending(t *testing.T) {
	db := openTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "spending@example.com")
	food := seedCategory(t, db, &user.ID, "Food", entity.CategoryTypeDebit)
	rent := seedCategory(t, db, &user.ID, "Rent", entity.CategoryTypeDebit)

	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "60.00", day(2026, time.July, 5))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "40.00", day(2026, time.July, 20))
	seedTransaction(t, db, user.ID, rent.ID, entity.TransactionTypeDebit, "1500.00", day(2026, time.July, 1))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "30.00", day(2026, time.August, 1))

	spent, err := repo.GetCategorySpending(ctx, user.ID, food.ID, day(2026, time.July, 1), day(2026, time.July, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.NewFromInt(100); !spent.Equal(want) {
		t.Errorf("expected %s, got %s", want, spent)
	}
}

func TestReportRepository_GetDailyExpenses(t *testing.T) {
	db := openTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "daily@example.com")
	food := seedCategory(t, db, &user.ID, "Food", entity.CategoryTypeDebit)
	salary := seedCategory(t, db, &user.ID, "Salary", entity.CategoryTypeCredit)

	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "10.00", day(2026, time.May, 3))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "15.00", day(2026, time.May, 3))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "20.00", day(2026, time.May, 1))
	seedTransaction(t, db, user.ID, salary.ID, entity.TransactionTypeCredit, "500.00", day(2026, time.May, 2))

	totals, err := repo.GetDailyExpenses(ctx, user.ID, day(2026, time.May, 1), day(2026, time.May, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(totals) != 2 {
		t.Fatalf("expected 2 daily totals, got %d", len(totals))
	}
	if !totals[0].Date.Before(totals[1].Date) {
		t.Errorf("expected ascending date order, got %s then %s", totals[0].Date, totals[1].Date)
	}
	if want := decimal.NewFromInt(20); !totals[0].Amount.Equal(want) {
		t.Errorf("expected May 1 total %s, got %s", want, totals[0].Amount)
	}
	if want := decimal.NewFromInt(25); !totals[1].Amount.Equal(want) {
		t.Errorf("expected May 3 total %s, got %s", want, totals[1].Amount)
	}
}

func TestReportRepository_LedgerEntries(t *testing.T) {
	db := openTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "ledger@example.com")
	food := seedCategory(t, db, &user.ID, "Food", entity.CategoryTypeDebit)
	salary := seedCategory(t, db, &user.ID, "Salary", entity.CategoryTypeCredit)

	oldest := seedTransaction(t, db, user.ID, salary.ID, entity.TransactionTypeCredit, "2000.00", day(2026, time.January, 5))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "25.00", day(2026, time.January, 10))
	newest := seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeDebit, "40.00", day(2026, time.January, 20))

	t.Run("recent transactions are newest first and capped", func(t *testing.T) {
		entries, err := repo.GetRecentTransactions(ctx, user.ID, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].ID != newest.ID {
			t.Errorf("expected newest transaction first, got %s", entries[0].ID)
		}
		if entries[0].CategoryName != "Food" {
			t.Errorf("expected category name Food, got %s", entries[0].CategoryName)
		}
	})

	t.Run("history returns every transaction", func(t *testing.T) {
		entries, err := repo.GetTransactionHistory(ctx, user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[2].ID != oldest.ID {
			t.Errorf("expected oldest transaction last, got %s", entries[2].ID)
		}
		if entries[2].Type != entity.TransactionTypeCredit {
			t.Errorf("expected CREDIT type, got %s", entries[2].Type)
		}
	})
}
