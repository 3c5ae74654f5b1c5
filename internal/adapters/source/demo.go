package source

import (
	"context"
	"time"

	"github.com/okian/gigfeed/internal/domain/model"
)

// Demo serves a fixed pair of fixture events when no upstream credentials
// are configured. Timestamps are derived from the clock on every call so
// the fixtures always look current; the normalizer treats them exactly
// like production records.
type Demo struct {
	now func() time.Time
}

// DemoOption applies a configuration option to the Demo source.
type DemoOption func(*Demo)

// WithDemoClock sets the time source used to derive fixture timestamps.
func WithDemoClock(now func() time.Time) DemoOption {
	return func(d *Demo) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDemo creates the fixture source with configuration options.
func NewDemo(opts ...DemoOption) *Demo {
	d := &Demo{now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// List returns the fixture events. It never fails.
func (d *Demo) List(_ context.Context) ([]model.RawEvent, error) {
	now := d.now()
	iso := func(t time.Time) *string {
		s := t.Format(time.RFC3339)
		return &s
	}
	str := func(s string) *string { return &s }

	return []model.RawEvent{
		{
			ID:          "1",
			Name:        "Street Session: Downtown Vibes #IRL #DNB",
			Description: str("Open DJ set in the city center.\n#IRL #DNB\nhttps://hpsbassline.myftp.biz/"),
			Start:       iso(now.Add(30 * time.Minute)),
			End:         iso(now.Add(2 * time.Hour)),
			Metadata:    &model.RawMetadata{Location: str("Haapsalu")},
			Image:       str("https://images.pexels.com/photos/1190298/pexels-photo-1190298.jpeg"),
		},
		{
			ID:          "2",
			Name:        "VR Club Showcase #VR #HARDCORE",
			Description: str("Immersive VR experience.\n#VR #HARDCORE\nhttps://twitch.tv/hps_bassline"),
			Start:       iso(now.Add(3 * time.Hour)),
			Metadata:    &model.RawMetadata{Location: str("VRChat")},
			Image:       str("https://images.pexels.com/photos/3404200/pexels-photo-3404200.jpeg"),
		},
	}, nil
}
