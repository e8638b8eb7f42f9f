// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID uuid.UUID
	Type   *entity.CategoryType
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID       uuid.UUID
	Name     string
	Type     entity.CategoryType
	IsSystem bool
	Color    string
	Icon     string
	ParentID *uuid.UUID
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// ListCategoriesUseCase handles listing the categories visible to a user:
// the shared system set plus the user's own.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindVisibleToUser(ctx, input.UserID, input.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	outputs := make([]*CategoryOutput, 0, len(categories))
	for _, c := range categories {
		outputs = append(outputs, toCategoryOutput(c))
	}

	return &ListCategoriesOutput{Categories: outputs}, nil
}

func toCategoryOutput(c *entity.Category) *CategoryOutput {
	return &CategoryOutput{
		ID:       c.ID,
		Name:     c.Name,
		Type:     c.Type,
		IsSystem: c.IsSystem(),
		Color:    c.Color,
		Icon:     c.Icon,
		ParentID: c.ParentID,
	}
}
