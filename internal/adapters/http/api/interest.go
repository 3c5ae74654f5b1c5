// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/gigfeed/internal/domain/model"
	"github.com/okian/gigfeed/pkg/metrics"
)

// interestSuffix terminates the interest route path.
const interestSuffix = "/interest"

// InterestDependencies defines the interface for interest operations.
type InterestDependencies interface {
	Interest(ctx context.Context, eventID string, action model.InterestAction) *model.Stats
}

// InterestHandler handles interest requests.
type InterestHandler struct {
	deps InterestDependencies
}

// NewInterestHandler creates a new interest handler.
func NewInterestHandler(deps InterestDependencies) *InterestHandler {
	return &InterestHandler{deps: deps}
}

// HandlePostInterest handles POST /api/events/{id}/interest requests.
// The action must be "going" or "interested"; anything else is a client
// error with no side effects.
func (h *InterestHandler) HandlePostInterest(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_interest"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	// Extract the event id between /api/events/ and /interest
	path := strings.TrimPrefix(r.URL.Path, "/api/events/")
	id, ok := strings.CutSuffix(path, interestSuffix)
	if !ok || id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	var req interestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	action := model.InterestAction(req.Action)
	if !action.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_action", NewKind(op, ErrInvalidAction))
		return
	}

	stats := h.deps.Interest(r.Context(), id, action)
	metrics.RecordInterestIncrement(string(action))
	writeJSON(w, http.StatusOK, stats)
}
