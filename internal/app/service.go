// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	repository "github.com/okian/gigfeed/internal/adapters/repository"
	"github.com/okian/gigfeed/internal/adapters/source"
	"github.com/okian/gigfeed/internal/config"
	"github.com/okian/gigfeed/internal/domain/enrich"
	"github.com/okian/gigfeed/internal/domain/feed"
	"github.com/okian/gigfeed/internal/domain/model"
	"github.com/okian/gigfeed/internal/domain/textscan"
	"github.com/okian/gigfeed/pkg/logger"
	"github.com/okian/gigfeed/pkg/metrics"
)

// Service wires the event source, enrichment pipeline, cache and interest
// store together behind the interfaces the HTTP API consumes.
type Service struct {
	mu sync.RWMutex

	// Configuration
	cfg *config.Config

	// Core components
	store      repository.Store
	fetcher    *feed.Fetcher
	eventsSrc  feed.Source
	normalizer *enrich.Normalizer

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSource overrides the upstream event source. Used by tests to feed
// scripted events through the full pipeline.
func WithSource(src feed.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.eventsSrc = src
		}
	}
}

// New constructs a new Service for the given configuration.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		logger: nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting event feed service...")

	s.store = repository.NewMemStore()

	scanner := textscan.New(
		textscan.WithRadioDomains(s.cfg.RadioDomains),
	)

	enrichOpts := []enrich.Option{
		enrich.WithGuildID(s.cfg.GuildID),
		enrich.WithCDNBase(s.cfg.CDNBaseURL),
		enrich.WithPlatformBase(s.cfg.PlatformBaseURL),
		enrich.WithScanner(scanner),
	}

	feedOpts := []feed.Option{
		feed.WithTTL(time.Duration(s.cfg.CacheTTLSeconds) * time.Second),
	}

	if s.cfg.DemoMode() {
		s.logger.Warn(ctx, "upstream credentials absent, serving demo fixtures")
		enrichOpts = append(enrichOpts, enrich.WithDemoLinks())
		// Fixture timestamps are relative to now, so never cache them.
		feedOpts = []feed.Option{feed.WithTTL(0)}
		if s.eventsSrc == nil {
			s.eventsSrc = source.NewDemo()
		}
	} else if s.eventsSrc == nil {
		s.eventsSrc = source.NewDiscord(
			s.cfg.GuildID,
			s.cfg.BotToken,
			source.WithBaseURL(s.cfg.APIBaseURL),
			source.WithTimeout(time.Duration(s.cfg.FetchTimeoutSeconds)*time.Second),
			source.WithLogger(s.logger),
		)
	}

	s.normalizer = enrich.New(s.store, enrichOpts...)
	s.fetcher = feed.New(s.eventsSrc, s.normalizer, feedOpts...)

	s.started = true
	s.logger.Info(ctx, "event feed service started",
		logger.Bool("demoMode", s.cfg.DemoMode()),
		logger.Int("cacheTTLSeconds", s.cfg.CacheTTLSeconds),
	)

	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "event feed service stopped")
}

// Events returns the current enriched sequence, optionally bypassing the
// cache freshness window.
func (s *Service) Events(ctx context.Context, force bool) ([]model.EnrichedEvent, error) {
	events, err := s.fetcher.Events(ctx, force)
	if err != nil {
		s.logger.Error(ctx, "event fetch failed",
			logger.Error(err),
			logger.Bool("force", force),
		)
		return nil, err
	}
	return events, nil
}

// CachedEvents returns the last good sequence regardless of age.
func (s *Service) CachedEvents() ([]model.EnrichedEvent, bool) {
	return s.fetcher.Cached()
}

// Interest increments one interest counter and returns the live pair.
func (s *Service) Interest(ctx context.Context, eventID string, action model.InterestAction) *model.Stats {
	return s.store.Increment(ctx, eventID, action)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":  s.started,
		"demoMode": s.cfg.DemoMode(),
	}

	if s.started {
		trackedEvents := s.store.Count(ctx)
		cached, ok := s.fetcher.Cached()

		stats["trackedEvents"] = trackedEvents
		stats["cachePopulated"] = ok
		stats["cachedEvents"] = len(cached)

		// Update metrics
		metrics.UpdateTrackedEvents(trackedEvents)
	}

	return stats
}
