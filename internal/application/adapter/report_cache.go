// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// ReportCache is a TTL-bound cache for computed report payloads, keyed by
// (operation, user, parameters). It is owned by the data-access layer and
// invalidated synchronously whenever a user's transactions or budgets change.
type ReportCache interface {
	// Get loads a cached payload into dest. The second return is false on miss.
	Get(ctx context.Context, operation string, userID uuid.UUID, params string, dest interface{}) (bool, error)

	// Set stores a payload under (operation, user, params) with the configured TTL.
	Set(ctx context.Context, operation string, userID uuid.UUID, params string, value interface{}) error

	// InvalidateUser drops every cached payload belonging to the user.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}
