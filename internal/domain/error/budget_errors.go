// Package error defines domain-specific errors for the fintrack application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when a budget already exists for the
	// (user, category, month, year) combination.
	ErrBudgetAlreadyExists = errors.New("a budget already exists for this category and month")

	// ErrInvalidMonthlyLimit is returned when the monthly limit is negative.
	ErrInvalidMonthlyLimit = errors.New("monthly limit must not be negative")

	// ErrInvalidBudgetMonth is returned when the month is outside 1-12.
	ErrInvalidBudgetMonth = errors.New("month must be between 1 and 12")

	// ErrBudgetCategoryNotFound is returned when the budget's category is not found.
	ErrBudgetCategoryNotFound = errors.New("category not found")

	// ErrBudgetCategoryNotVisible is returned when the category is neither a
	// system category nor owned by the user.
	ErrBudgetCategoryNotVisible = errors.New("category not visible to user")

	// ErrNotAuthorizedToModifyBudget is returned when user is not authorized to modify a budget.
	ErrNotAuthorizedToModifyBudget = errors.New("not authorized to modify budget")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonthlyLimit      BudgetErrorCode = "BGT-010001"
	ErrCodeInvalidBudgetMonth       BudgetErrorCode = "BGT-010002"
	ErrCodeBudgetNotFound           BudgetErrorCode = "BGT-010003"
	ErrCodeBudgetAlreadyExists      BudgetErrorCode = "BGT-010004"
	ErrCodeBudgetCategoryNotFound   BudgetErrorCode = "BGT-010005"
	ErrCodeBudgetCategoryNotVisible BudgetErrorCode = "BGT-010006"
	ErrCodeNotAuthorizedBudget      BudgetErrorCode = "BGT-010007"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
