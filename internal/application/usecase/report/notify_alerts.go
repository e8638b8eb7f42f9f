// Package report contains the financial aggregation and reporting use cases.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
)

// NotifyBudgetAlertsUseCase checks a user's budget usage for one category
// after a spending write and queues an alert email when a threshold was
// crossed. Callers invoke it best-effort; a failure here never fails the
// write that triggered it.
type NotifyBudgetAlertsUseCase struct {
	budgetStatusUseCase *GetBudgetStatusUseCase
	userRepo            adapter.UserRepository
	notifier            adapter.AlertNotifier
	clock               adapter.Clock
}

// NewNotifyBudgetAlertsUseCase creates a new NotifyBudgetAlertsUseCase instance.
func NewNotifyBudgetAlertsUseCase(
	budgetStatusUseCase *GetBudgetStatusUseCase,
	userRepo adapter.UserRepository,
	notifier adapter.AlertNotifier,
	clock adapter.Clock,
) *NotifyBudgetAlertsUseCase {
	return &NotifyBudgetAlertsUseCase{
		budgetStatusUseCase: budgetStatusUseCase,
		userRepo:            userRepo,
		notifier:            notifier,
		clock:               clock,
	}
}

// Execute evaluates the current-month budget for the given category and
// queues an alert email when usage is at or past the warning threshold.
// Users who disabled alert emails are skipped.
func (uc *NotifyBudgetAlertsUseCase) Execute(ctx context.Context, userID, categoryID uuid.UUID) error {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !user.AlertEmails {
		return nil
	}

	today := uc.clock.Now()
	comparisons, err := uc.budgetStatusUseCase.Execute(ctx, userID, int(today.Month()), today.Year())
	if err != nil {
		return fmt.Errorf("failed to compute budget status: %w", err)
	}

	for _, alert := range EvaluateBudgetAlerts(comparisons) {
		matched := false
		for _, c := range comparisons {
			if c.CategoryName == alert.CategoryName && c.CategoryID == categoryID {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		percentage, _ := alert.Percentage.Float64()
		input := adapter.QueueBudgetAlertInput{
			UserEmail:    user.Email,
			UserName:     user.Name,
			CategoryName: alert.CategoryName,
			Percentage:   percentage,
			SpentDisplay: alert.Spent.StringFixed(2),
			LimitDisplay: alert.Limit.StringFixed(2),
			Exceeded:     alert.Status == BudgetStatusDanger,
		}
		if err := uc.notifier.QueueBudgetAlert(ctx, input); err != nil {
			return fmt.Errorf("failed to queue budget alert: %w", err)
		}
		slog.Info("Queued budget alert email",
			"user_id", userID, "category", alert.CategoryName, "status", alert.Status)
	}

	return nil
}
