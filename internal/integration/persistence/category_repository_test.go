package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

func TestCategoryRepository_FindVisibleToUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "categories@example.com")
	other := seedUser(t, db, "neighbor@example.com")

	seedCategory(t, db, nil, "Groceries", entity.CategoryTypeDebit)
	seedCategory(t, db, nil, "Salary", entity.CategoryTypeCredit)
	seedCategory(t, db, &user.ID, "Climbing", entity.CategoryTypeDebit)
	seedCategory(t, db, &other.ID, "Sailing", entity.CategoryTypeDebit)

	t.Run("returns system and own categories only", func(t *testing.T) {
		categories, err := repo.FindVisibleToUser(ctx, user.ID, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(categories) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(categories))
		}
		for _, c := range categories {
			if c.Name == "Sailing" {
				t.Error("another user's category should not be visible")
			}
		}
	})

	t.Run("system categories sort before user categories", func(t *testing.T) {
		categories, err := repo.FindVisibleToUser(ctx, user.ID, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if categories[len(categories)-1].Name != "Climbing" {
			t.Errorf("expected user category last, got %s", categories[len(categories)-1].Name)
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		credit := entity.CategoryTypeCredit
		categories, err := repo.FindVisibleToUser(ctx, user.ID, &credit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(categories) != 1 || categories[0].Name != "Salary" {
			t.Fatalf("expected only Salary, got %d categories", len(categories))
		}
	})
}

func TestCategoryRepository_Delete(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "delete-cat@example.com")
	category := seedCategory(t, db, &user.ID, "Temporary", entity.CategoryTypeDebit)

	if err := repo.Delete(ctx, category.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, category.ID); !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := entity.NewUser("exists@example.com", "Exists", "hash")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	t.Run("finds a user by email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "exists@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, found.ID)
		}
	})

	t.Run("missing email returns not found", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "ghost@example.com")
		if !errors.Is(err, domainerror.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("reports email existence", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "exists@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !exists {
			t.Error("expected email to exist")
		}

		exists, err = repo.ExistsByEmail(ctx, "ghost@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exists {
			t.Error("expected email to not exist")
		}
	})
}
