package enrich

import (
	"time"

	"github.com/okian/gigfeed/internal/domain/model"
)

// defaultDuration is assumed when an event has a start but no end.
const defaultDuration = 3 * time.Hour

// Display labels per status code.
var statusLabels = map[model.StatusCode]string{
	model.StatusUpcoming: "Upcoming",
	model.StatusLive:     "Live",
	model.StatusPast:     "Past",
}

// ResolveStatus derives the temporal status of an event from its start and
// end timestamps (RFC 3339) relative to now. An event with no start, or an
// unparseable one, is upcoming: it cannot be scheduled. The live window is
// inclusive on both bounds.
func ResolveStatus(start, end *string, now time.Time) model.Status {
	if start == nil {
		return status(model.StatusUpcoming)
	}
	startAt, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		return status(model.StatusUpcoming)
	}

	endAt := startAt.Add(defaultDuration)
	if end != nil {
		if parsed, err := time.Parse(time.RFC3339, *end); err == nil {
			endAt = parsed
		}
	}

	switch {
	case now.Before(startAt):
		return status(model.StatusUpcoming)
	case now.After(endAt):
		return status(model.StatusPast)
	default:
		return status(model.StatusLive)
	}
}

func status(code model.StatusCode) model.Status {
	return model.Status{Code: code, Label: statusLabels[code]}
}
