package adapters

import (
	"time"

	"github.com/fintrack/backend/internal/application/adapter"
)

// systemClock implements adapter.Clock using the system time in UTC.
type systemClock struct{}

// NewSystemClock creates a clock backed by the system time.
func NewSystemClock() adapter.Clock {
	return &systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
