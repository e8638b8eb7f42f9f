package email

import (
	"context"
	"fmt"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
)

// AlertNotifier implements adapter.AlertNotifier by enqueueing budget alert
// emails for the queue worker to deliver.
type AlertNotifier struct {
	queue adapter.EmailQueueRepository
	clock adapter.Clock
}

// NewAlertNotifier creates a new alert notifier.
func NewAlertNotifier(queue adapter.EmailQueueRepository, clock adapter.Clock) *AlertNotifier {
	return &AlertNotifier{
		queue: queue,
		clock: clock,
	}
}

// QueueBudgetAlert queues a budget alert email for the user.
func (n *AlertNotifier) QueueBudgetAlert(ctx context.Context, input adapter.QueueBudgetAlertInput) error {
	monthLabel := n.clock.Now().Format("January 2006")

	templateType := entity.TemplateBudgetWarning
	subject := fmt.Sprintf("Budget warning: %s at %.1f%%", input.CategoryName, input.Percentage)
	if input.Exceeded {
		templateType = entity.TemplateBudgetExceeded
		subject = fmt.Sprintf("Budget exceeded: %s", input.CategoryName)
	}

	data := map[string]interface{}{
		"user_name":     input.UserName,
		"category_name": input.CategoryName,
		"percentage":    fmt.Sprintf("%.1f", input.Percentage),
		"spent":         input.SpentDisplay,
		"limit":         input.LimitDisplay,
		"month_label":   monthLabel,
	}

	job := entity.NewEmailJob(
		templateType,
		input.UserEmail,
		input.UserName,
		subject,
		[]string{input.CategoryName},
		data,
	)

	return n.queue.Create(ctx, job)
}

var _ adapter.AlertNotifier = (*AlertNotifier)(nil)
