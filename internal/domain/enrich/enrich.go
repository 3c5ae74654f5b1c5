// Package enrich turns raw upstream event records into enriched feed
// records: derived type, temporal status, extracted links/tags, built
// image and deep-link URLs, and live interest counters.
package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/gigfeed/internal/domain/model"
	"github.com/okian/gigfeed/internal/domain/textscan"
)

// Default URL bases for the production guild platform.
const (
	defaultCDNBase      = "https://cdn.discordapp.com"
	defaultPlatformBase = "https://discord.com"

	// demoLink is the deep-link placeholder in demonstration mode, where
	// there is no real guild to link into.
	demoLink = "#"

	imageSize = 1024
)

// StatsProvider hands out the live counter pair for an event id, creating
// it at zero on first access.
type StatsProvider interface {
	Stats(ctx context.Context, eventID string) *model.Stats
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithGuildID sets the guild used in deep links.
func WithGuildID(id string) Option {
	return func(n *Normalizer) {
		n.guildID = id
	}
}

// WithCDNBase overrides the CDN base URL for event images.
func WithCDNBase(base string) Option {
	return func(n *Normalizer) {
		if base != "" {
			n.cdnBase = base
		}
	}
}

// WithPlatformBase overrides the platform base URL for deep links.
func WithPlatformBase(base string) Option {
	return func(n *Normalizer) {
		if base != "" {
			n.platformBase = base
		}
	}
}

// WithScanner sets a custom link/tag scanner.
func WithScanner(s *textscan.Scanner) Option {
	return func(n *Normalizer) {
		if s != nil {
			n.scanner = s
		}
	}
}

// WithClock sets the time source used for status resolution.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// WithDemoLinks switches to demonstration-mode URL rules: images pass
// through as-is and deep links are a placeholder.
func WithDemoLinks() Option {
	return func(n *Normalizer) {
		n.demo = true
	}
}

// Normalizer composes classification, status resolution, link/tag scanning
// and counter lookup into one enriched record per raw record.
type Normalizer struct {
	stats        StatsProvider
	scanner      *textscan.Scanner
	guildID      string
	cdnBase      string
	platformBase string
	demo         bool
	now          func() time.Time
}

// New creates a Normalizer with configuration options.
func New(stats StatsProvider, opts ...Option) *Normalizer {
	n := &Normalizer{
		stats:        stats,
		scanner:      textscan.New(),
		cdnBase:      defaultCDNBase,
		platformBase: defaultPlatformBase,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Enrich produces the enriched record for one raw event. There is no error
// path: missing or malformed optional fields degrade to absent values.
func (n *Normalizer) Enrich(ctx context.Context, raw model.RawEvent) model.EnrichedEvent {
	desc := ""
	if raw.Description != nil {
		desc = *raw.Description
	}
	scanned := n.scanner.Scan(desc)

	return model.EnrichedEvent{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Image:       n.imageURL(raw),
		Start:       raw.Start,
		End:         raw.End,
		Type:        Classify(raw.Name, raw.Description),
		Location:    raw.Location(),
		Link:        n.deepLink(raw.ID),
		Links:       scanned.Links,
		Tags:        scanned.Tags,
		Status:      ResolveStatus(raw.Start, raw.End, n.now()),
		Stats:       n.stats.Stats(ctx, raw.ID),
	}
}

// imageURL builds the CDN image URL from the opaque image reference, or
// passes the reference through untouched in demonstration mode.
func (n *Normalizer) imageURL(raw model.RawEvent) *string {
	if raw.Image == nil {
		return nil
	}
	if n.demo {
		return raw.Image
	}
	u := fmt.Sprintf("%s/guild-events/%s/%s.webp?size=%d", n.cdnBase, raw.ID, *raw.Image, imageSize)
	return &u
}

// deepLink builds the canonical link to the event on the source platform.
func (n *Normalizer) deepLink(eventID string) string {
	if n.demo {
		return demoLink
	}
	return fmt.Sprintf("%s/events/%s/%s", n.platformBase, n.guildID, eventID)
}
