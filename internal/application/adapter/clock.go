// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the current time. Report computations anchored to "today"
// go through this interface so they stay deterministic under test.
type Clock interface {
	// Now returns the current time in the server timezone (UTC).
	Now() time.Time
}
