package mock

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
)

// EmailSender records every email the worker tries to deliver instead of
// calling an external provider.
type EmailSender struct {
	mu   sync.Mutex
	sent []adapter.SendEmailInput
}

func NewEmailSender() *EmailSender {
	return &EmailSender{}
}

func (s *EmailSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ProviderID: uuid.NewString()}, nil
}

// SentEmails returns a copy of everything sent so far.
func (s *EmailSender) SentEmails() []adapter.SendEmailInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]adapter.SendEmailInput, len(s.sent))
	copy(out, s.sent)
	return out
}

func (s *EmailSender) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}
