package enrich

import (
	"strings"

	"github.com/okian/gigfeed/internal/domain/model"
)

// Classification markers, tested in priority order. First match wins, so
// text carrying several markers still yields exactly one type.
const (
	markerIRL     = "#IRL"
	markerVR      = "#VR"
	markerVirtual = "#VIRTUAL"
	markerRadio   = "#RADIO"
)

// Classify derives the event type from hashtags in name and description.
func Classify(name string, description *string) model.EventType {
	desc := ""
	if description != nil {
		desc = *description
	}
	text := strings.ToUpper(name + "\n" + desc)

	switch {
	case strings.Contains(text, markerIRL):
		return model.TypeIRL
	case strings.Contains(text, markerVR), strings.Contains(text, markerVirtual):
		return model.TypeVirtual
	case strings.Contains(text, markerRadio):
		return model.TypeRadio
	default:
		return model.TypeOther
	}
}
