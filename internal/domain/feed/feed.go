// Package feed owns the cache-fronted event fetch: it decides when to call
// upstream, normalizes raw records, and serves stale results when upstream
// rate-limits or fails.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/gigfeed/internal/domain/model"
	"github.com/okian/gigfeed/pkg/metrics"
)

// defaultTTL is the freshness window: how long a successful fetch result
// is served without re-contacting upstream.
const defaultTTL = 15 * time.Second

// Source lists the raw scheduled events of the guild. Implementations
// return ErrRateLimited (possibly wrapped) when upstream throttles them.
type Source interface {
	List(ctx context.Context) ([]model.RawEvent, error)
}

// Enricher turns one raw record into an enriched record.
type Enricher interface {
	Enrich(ctx context.Context, raw model.RawEvent) model.EnrichedEvent
}

// Option applies a configuration option to the Fetcher.
type Option func(*Fetcher)

// WithTTL sets the freshness window. Zero or negative disables caching:
// every fetch goes upstream.
func WithTTL(ttl time.Duration) Option {
	return func(f *Fetcher) {
		f.ttl = ttl
	}
}

// WithClock sets the time source used for freshness decisions.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		if now != nil {
			f.now = now
		}
	}
}

// Fetcher is the single entry point for the current enriched event
// sequence. It holds one cache slot that is replaced wholesale on each
// successful refresh; concurrent callers racing past an expired slot may
// each fetch, which is accepted since the last writer simply wins.
type Fetcher struct {
	mu       sync.RWMutex
	cached   []model.EnrichedEvent
	cachedAt time.Time

	source   Source
	enricher Enricher
	ttl      time.Duration
	now      func() time.Time
}

// New creates a Fetcher with configuration options.
func New(source Source, enricher Enricher, opts ...Option) *Fetcher {
	f := &Fetcher{
		source:   source,
		enricher: enricher,
		ttl:      defaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Events returns the current enriched sequence. With force unset and a
// fresh cache the slot is served as-is; otherwise one upstream call is
// made. A rate-limited call falls back to the cache at any age; any other
// failure surfaces as ErrUpstreamUnavailable.
func (f *Fetcher) Events(ctx context.Context, force bool) ([]model.EnrichedEvent, error) {
	if !force {
		if events, ok := f.fresh(); ok {
			metrics.RecordCacheHit()
			return events, nil
		}
	}

	raw, err := f.source.List(ctx)
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			if events, ok := f.Cached(); ok {
				metrics.RecordStaleFallback()
				metrics.RecordUpstreamFetch("rate_limited")
				return events, nil
			}
		}
		metrics.RecordUpstreamFetch("error")
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	events := make([]model.EnrichedEvent, 0, len(raw))
	for _, r := range raw {
		events = append(events, f.enricher.Enrich(ctx, r))
	}

	f.mu.Lock()
	f.cached = events
	f.cachedAt = f.now()
	f.mu.Unlock()

	metrics.RecordUpstreamFetch("success")
	metrics.UpdateCachedEvents(len(events))
	return events, nil
}

// Cached returns the last good sequence regardless of age. Callers use it
// as the boundary fallback when Events fails.
func (f *Fetcher) Cached() ([]model.EnrichedEvent, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cached, f.cached != nil
}

// fresh returns the cached sequence only while it is inside the freshness
// window.
func (f *Fetcher) fresh() ([]model.EnrichedEvent, bool) {
	if f.ttl <= 0 {
		return nil, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.cached == nil || f.now().Sub(f.cachedAt) >= f.ttl {
		return nil, false
	}
	return f.cached, true
}
