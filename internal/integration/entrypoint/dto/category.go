package dto

import (
	"github.com/fintrack/backend/internal/application/usecase/category"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=100"`
	Type     string  `json:"type" binding:"required,oneof=DEBIT CREDIT"`
	Color    string  `json:"color,omitempty" binding:"omitempty,max=20"`
	Icon     string  `json:"icon,omitempty" binding:"omitempty,max=50"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	IsSystem bool    `json:"is_system"`
	Color    string  `json:"color"`
	Icon     string  `json:"icon"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a CategoryOutput to a CategoryResponse DTO.
func ToCategoryResponse(c *category.CategoryOutput) CategoryResponse {
	var parentID *string
	if c.ParentID != nil {
		s := c.ParentID.String()
		parentID = &s
	}

	return CategoryResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Type:     string(c.Type),
		IsSystem: c.IsSystem,
		Color:    c.Color,
		Icon:     c.Icon,
		ParentID: parentID,
	}
}

// ToCategoryListResponse converts a ListCategoriesOutput to a CategoryListResponse DTO.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = ToCategoryResponse(c)
	}
	return CategoryListResponse{Categories: categories}
}
