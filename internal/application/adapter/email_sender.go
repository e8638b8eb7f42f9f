// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// AlertNotifier defines the interface for queueing budget alert emails.
type AlertNotifier interface {
	// QueueBudgetAlert queues a budget alert email for the user.
	QueueBudgetAlert(ctx context.Context, input QueueBudgetAlertInput) error
}

// QueueBudgetAlertInput represents the input for queueing a budget alert email.
type QueueBudgetAlertInput struct {
	UserEmail    string
	UserName     string
	CategoryName string
	Percentage   float64
	SpentDisplay string
	LimitDisplay string
	Exceeded     bool // true when spending crossed 100% of the limit
}
