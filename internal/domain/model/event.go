// Package model contains domain models passed between layers.
package model

// EventType is the coarse category derived from classification hashtags.
type EventType string

// Event type codes.
const (
	TypeIRL     EventType = "irl"
	TypeVirtual EventType = "virtual"
	TypeRadio   EventType = "radio"
	TypeOther   EventType = "other"
)

// StatusCode captures where an event sits relative to the clock.
type StatusCode string

// Status codes.
const (
	StatusUpcoming StatusCode = "upcoming"
	StatusLive     StatusCode = "live"
	StatusPast     StatusCode = "past"
)

// Status pairs a machine code with its display label.
type Status struct {
	Code  StatusCode `json:"code"`
	Label string     `json:"label"`
}

// Link is a URL extracted from an event description with a platform label.
type Link struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// RawEvent mirrors one scheduled-event object as the upstream guild API
// returns it. Optional fields are pointers; absence is meaningful.
type RawEvent struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Start       *string      `json:"scheduled_start_time"`
	End         *string      `json:"scheduled_end_time"`
	Metadata    *RawMetadata `json:"entity_metadata"`
	Image       *string      `json:"image"`
}

// RawMetadata holds the nested metadata object of a raw event.
type RawMetadata struct {
	Location *string `json:"location"`
}

// Location returns the nested location field, or nil when the metadata
// object itself is absent.
func (e RawEvent) Location() *string {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata.Location
}

// EnrichedEvent is the feed's output record: one raw event augmented with
// derived type, status, extracted links/tags and live interest counters.
// Immutable once produced, except Stats which points into the shared store.
type EnrichedEvent struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Start       *string   `json:"start"`
	End         *string   `json:"end"`
	Type        EventType `json:"type"`
	Location    *string   `json:"location"`
	Link        string    `json:"link"`
	Links       []Link    `json:"links"`
	Tags        []string  `json:"tags"`
	Status      Status    `json:"status"`
	Stats       *Stats    `json:"stats"`
}
