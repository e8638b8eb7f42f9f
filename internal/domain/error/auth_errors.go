// Package error defines domain-specific errors for the fintrack application.
package error

import "errors"

// Auth domain errors.
var (
	// ErrInvalidEmail is returned when the email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmailAlreadyExists is returned when registering with an existing email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrWeakPassword is returned when the password does not meet minimum requirements.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")

	// ErrInvalidCredentials is returned when login credentials are wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingToken is returned when no bearer token is supplied.
	ErrMissingToken = errors.New("authorization token is required")

	// ErrInvalidToken is returned when the bearer token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthErrorCode defines error codes for auth errors.
// Format: ATH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidEmail       AuthErrorCode = "ATH-010001"
	ErrCodeEmailExists        AuthErrorCode = "ATH-010002"
	ErrCodeWeakPassword       AuthErrorCode = "ATH-010003"
	ErrCodeInvalidCredentials AuthErrorCode = "ATH-010004"
	ErrCodeUserNotFound       AuthErrorCode = "ATH-010005"

	// Token errors (02XXXX)
	ErrCodeMissingToken AuthErrorCode = "ATH-020001"
	ErrCodeInvalidToken AuthErrorCode = "ATH-020002"

	// Rate limiting (03XXXX)
	ErrCodeRateLimited AuthErrorCode = "ATH-030001"
)

// AuthError represents an auth error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
