// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/gigfeed/internal/domain/model"
	"github.com/okian/gigfeed/pkg/metrics"
)

// EventDependencies defines the interface for event read operations.
type EventDependencies interface {
	Events(ctx context.Context, force bool) ([]model.EnrichedEvent, error)
	CachedEvents() ([]model.EnrichedEvent, bool)
}

// EventsHandler handles event feed requests.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleGetEvents handles GET /api/events?type=<code>&force=1 requests.
// Past events are never returned; a pipeline failure falls back to the
// last good cached sequence when one exists.
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_events"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	filterType := strings.ToLower(r.URL.Query().Get("type"))
	force := r.URL.Query().Get("force") == "1"

	events, err := h.deps.Events(r.Context(), force)
	if err != nil {
		if cached, ok := h.deps.CachedEvents(); ok {
			writeJSON(w, http.StatusOK, presentable(cached, filterType))
			return
		}
		writeError(w, http.StatusInternalServerError, "upstream_unavailable", WrapKind(op, ErrNoData, err))
		return
	}

	out := presentable(events, filterType)
	metrics.RecordEventsServed(len(out))
	writeJSON(w, http.StatusOK, out)
}

// presentable applies the presentation filters: optional type equality and
// the unconditional exclusion of past events.
func presentable(events []model.EnrichedEvent, filterType string) []model.EnrichedEvent {
	out := make([]model.EnrichedEvent, 0, len(events))
	for _, e := range events {
		if filterType != "" && string(e.Type) != filterType {
			continue
		}
		if e.Status.Code == model.StatusPast {
			continue
		}
		out = append(out, e)
	}
	return out
}
