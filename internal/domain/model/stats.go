package model

import (
	"encoding/json"
	"sync/atomic"
)

// InterestAction names one of the two interest counters.
type InterestAction string

// Recognized interest actions; anything else is a client error.
const (
	ActionGoing      InterestAction = "going"
	ActionInterested InterestAction = "interested"
)

// Valid reports whether the action names a known counter.
func (a InterestAction) Valid() bool {
	return a == ActionGoing || a == ActionInterested
}

// Stats is the pair of interest counters for one event. Enriched events
// hold a pointer to the store's instance rather than a copy, so counts
// reflect increments made after the event was cached. Atomic fields keep
// concurrent increment and JSON encode race-free.
type Stats struct {
	going      atomic.Int64
	interested atomic.Int64
}

// Add increments the counter named by action and returns its new value.
// Callers must validate the action first.
func (s *Stats) Add(action InterestAction) int64 {
	if action == ActionGoing {
		return s.going.Add(1)
	}
	return s.interested.Add(1)
}

// Going returns the current going count.
func (s *Stats) Going() int64 { return s.going.Load() }

// Interested returns the current interested count.
func (s *Stats) Interested() int64 { return s.interested.Load() }

// statsJSON is the wire shape of a counter pair.
type statsJSON struct {
	Going      int64 `json:"going"`
	Interested int64 `json:"interested"`
}

// MarshalJSON encodes a point-in-time snapshot of the counters.
func (s *Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(statsJSON{ //nolint:wrapcheck // plain marshal of a value type
		Going:      s.going.Load(),
		Interested: s.interested.Load(),
	})
}

// UnmarshalJSON restores counters from their wire shape.
func (s *Stats) UnmarshalJSON(b []byte) error {
	var v statsJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err //nolint:wrapcheck // plain unmarshal of a value type
	}
	s.going.Store(v.Going)
	s.interested.Store(v.Interested)
	return nil
}
