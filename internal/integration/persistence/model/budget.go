// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database. The composite
// unique index enforces one budget per (user, category, month, year); a
// violation surfaces as a duplicated-key error from the driver.
type BudgetModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category_month"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category_month"`
	MonthlyLimit decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Month        int             `gorm:"not null;uniqueIndex:idx_budgets_user_category_month"`
	Year         int             `gorm:"not null;uniqueIndex:idx_budgets_user_category_month"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:           m.ID,
		UserID:       m.UserID,
		CategoryID:   m.CategoryID,
		MonthlyLimit: m.MonthlyLimit,
		Month:        m.Month,
		Year:         m.Year,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToEntityWithCategory converts a BudgetModel with its Category to a
// BudgetWithCategory entity.
func (m *BudgetModel) ToEntityWithCategory() *entity.BudgetWithCategory {
	result := &entity.BudgetWithCategory{
		Budget: m.ToEntity(),
	}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:           budget.ID,
		UserID:       budget.UserID,
		CategoryID:   budget.CategoryID,
		MonthlyLimit: budget.MonthlyLimit,
		Month:        budget.Month,
		Year:         budget.Year,
		CreatedAt:    budget.CreatedAt,
		UpdatedAt:    budget.UpdatedAt,
	}
}
