package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
	"github.com/fintrack/backend/internal/integration/email/templates"
)

type fakeQueue struct {
	jobs map[uuid.UUID]*entity.EmailJob
}

func newFakeQueue(jobs ...*entity.EmailJob) *fakeQueue {
	q := &fakeQueue{jobs: make(map[uuid.UUID]*entity.EmailJob)}
	for _, job := range jobs {
		q.jobs[job.ID] = job
	}
	return q
}

func (q *fakeQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *fakeQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	var pending []*entity.EmailJob
	for _, job := range q.jobs {
		if job.IsReadyToProcess() && len(pending) < limit {
			pending = append(pending, job)
		}
	}
	return pending, nil
}

func (q *fakeQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *fakeQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	job, ok := q.jobs[id]
	if !ok {
		return nil, errors.New("job not found")
	}
	return job, nil
}

func (q *fakeQueue) DeleteOldSentJobs(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

type fakeSender struct {
	sent []adapter.SendEmailInput
	err  error
}

func (s *fakeSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ProviderID: "provider-123"}, nil
}

func newAlertJob(t *testing.T, templateType entity.EmailTemplateType) *entity.EmailJob {
	t.Helper()
	job := entity.NewEmailJob(templateType, "user@example.com", "Test User", "Budget warning: Food at 85.0%", []string{"Food"}, map[string]interface{}{
		"user_name":     "Test User",
		"category_name": "Food",
		"percentage":    "85.0",
		"spent":         "85.00",
		"limit":         "100.00",
		"month_label":   "March 2026",
	})
	job.ScheduledAt = time.Now().UTC().Add(-time.Minute)
	return job
}

func newTestWorker(t *testing.T, queue adapter.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, WorkerConfig{BatchSize: 10})
}

func TestWorker_ProcessNow(t *testing.T) {
	ctx := context.Background()

	t.Run("sends a pending job and marks it sent", func(t *testing.T) {
		job := newAlertJob(t, entity.TemplateBudgetWarning)
		queue := newFakeQueue(job)
		sender := &fakeSender{}
		worker := newTestWorker(t, queue, sender)

		worker.ProcessNow(ctx)

		if len(sender.sent) != 1 {
			t.Fatalf("expected 1 sent email, got %d", len(sender.sent))
		}
		if sender.sent[0].To != "user@example.com" {
			t.Errorf("expected recipient user@example.com, got %s", sender.sent[0].To)
		}
		if !strings.Contains(sender.sent[0].HTML, "Food") {
			t.Error("expected rendered HTML to mention the category")
		}
		if job.Status != entity.EmailStatusSent {
			t.Errorf("expected status sent, got %s", job.Status)
		}
		if job.ProviderID != "provider-123" {
			t.Errorf("expected provider id to be recorded, got %q", job.ProviderID)
		}
	})

	t.Run("temporary send failure schedules a retry", func(t *testing.T) {
		job := newAlertJob(t, entity.TemplateBudgetExceeded)
		queue := newFakeQueue(job)
		sender := &fakeSender{err: fmt.Errorf("%w: connection reset", domainerror.ErrEmailSendFailed)}
		worker := newTestWorker(t, queue, sender)

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusPending {
			t.Errorf("expected status pending for retry, got %s", job.Status)
		}
		if job.Attempts != 1 {
			t.Errorf("expected 1 attempt, got %d", job.Attempts)
		}
	})

	t.Run("permanent send failure fails the job", func(t *testing.T) {
		job := newAlertJob(t, entity.TemplateBudgetWarning)
		queue := newFakeQueue(job)
		sender := &fakeSender{err: fmt.Errorf("%w: invalid recipient", domainerror.ErrEmailPermanentFailure)}
		worker := newTestWorker(t, queue, sender)

		worker.ProcessNow(ctx)

		if job.Status != entity.EmailStatusFailed {
			t.Errorf("expected status failed, got %s", job.Status)
		}
	})

	t.Run("unknown template type fails the job permanently", func(t *testing.T) {
		job := newAlertJob(t, entity.EmailTemplateType("newsletter"))
		queue := newFakeQueue(job)
		sender := &fakeSender{}
		worker := newTestWorker(t, queue, sender)

		worker.ProcessNow(ctx)

		if len(sender.sent) != 0 {
			t.Errorf("expected no emails sent, got %d", len(sender.sent))
		}
		if job.Status != entity.EmailStatusFailed {
			t.Errorf("expected status failed, got %s", job.Status)
		}
	})

	t.Run("retry exhaustion fails the job", func(t *testing.T) {
		job := newAlertJob(t, entity.TemplateBudgetWarning)
		job.ScheduledAt = job.ScheduledAt.Add(-time.Minute)
		queue := newFakeQueue(job)
		sender := &fakeSender{err: fmt.Errorf("%w: timeout", domainerror.ErrEmailSendFailed)}
		worker := newTestWorker(t, queue, sender)

		for i := 0; i < 5; i++ {
			job.ScheduledAt = time.Now().UTC().Add(-time.Second)
			worker.ProcessNow(ctx)
		}

		if job.Status != entity.EmailStatusFailed {
			t.Errorf("expected status failed after max attempts, got %s", job.Status)
		}
		if job.Attempts != job.MaxAttempts {
			t.Errorf("expected %d attempts, got %d", job.MaxAttempts, job.Attempts)
		}
	})
}
