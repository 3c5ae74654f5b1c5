// Package repository defines the interest counter store and its in-memory
// implementation.
package repository

import (
	"context"

	"github.com/okian/gigfeed/internal/domain/model"
)

// Store hands out live interest counters keyed by event id. Counters are
// created at zero on first access and live for the process lifetime; there
// is no persistence.
type Store interface {
	// Stats returns the counter pair for an event, creating it if needed.
	// The returned pointer is shared: enriched events and increments see
	// the same counters.
	Stats(ctx context.Context, eventID string) *model.Stats

	// Increment bumps the counter named by action and returns the live
	// pair. Callers must validate the action first.
	Increment(ctx context.Context, eventID string, action model.InterestAction) *model.Stats

	// Count returns the number of events with counters.
	Count(ctx context.Context) int
}
