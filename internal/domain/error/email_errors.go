// Package error defines domain-specific errors for the fintrack application.
package error

import "errors"

// Email delivery errors.
var (
	// ErrEmailJobNotFound is returned when an email job is not found in the queue.
	ErrEmailJobNotFound = errors.New("email job not found")

	// ErrEmailSendFailed is returned when the provider rejects an email.
	ErrEmailSendFailed = errors.New("email send failed")

	// ErrEmailPermanentFailure is returned for non-retryable provider errors.
	ErrEmailPermanentFailure = errors.New("email permanently failed")
)
