// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (CREDIT or DEBIT).
type CategoryType string

const (
	CategoryTypeCredit CategoryType = "CREDIT"
	CategoryTypeDebit  CategoryType = "DEBIT"
)

// IsValid reports whether the category type is one of the enumerated values.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeCredit || t == CategoryTypeDebit
}

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a transaction category. A nil UserID marks a system
// category shared by all users; otherwise the category belongs to one user.
// Type is fixed at creation.
type Category struct {
	ID        uuid.UUID
	Name      string
	Type      CategoryType
	UserID    *uuid.UUID
	Color     string
	Icon      string
	ParentID  *uuid.UUID // optional subcategory grouping, unused by aggregation
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity. Defaulting of color and icon is
// applied in the use case layer before calling this constructor.
func NewCategory(name string, categoryType CategoryType, userID *uuid.UUID, color, icon string, parentID *uuid.UUID) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Type:      categoryType,
		UserID:    userID,
		Color:     color,
		Icon:      icon,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSystem reports whether the category is a system-wide category.
func (c *Category) IsSystem() bool {
	return c.UserID == nil
}

// VisibleTo reports whether the category can be used by the given user.
func (c *Category) VisibleTo(userID uuid.UUID) bool {
	return c.UserID == nil || *c.UserID == userID
}
