package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/gigfeed/internal/domain/feed"
	"github.com/okian/gigfeed/internal/domain/model"
	"github.com/okian/gigfeed/pkg/logger"
)

// defaultBaseURL is the versioned API root of the guild platform.
const defaultBaseURL = "https://discord.com/api/v10"

// maxErrorBodyBytes caps how much of an error response body is read for
// logging.
const maxErrorBodyBytes = 4096

// DiscordOption applies a configuration option to the Discord source.
type DiscordOption func(*Discord)

// WithBaseURL overrides the API root, e.g. for tests against httptest.
func WithBaseURL(base string) DiscordOption {
	return func(d *Discord) {
		if base != "" {
			d.baseURL = base
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *Discord) {
		if c != nil {
			d.client = c
		}
	}
}

// WithTimeout sets the overall request timeout on the default client.
func WithTimeout(timeout time.Duration) DiscordOption {
	return func(d *Discord) {
		if timeout > 0 {
			d.client = newHTTPClient(timeout)
		}
	}
}

// WithLogger sets a custom logger for the source.
func WithLogger(l logger.Logger) DiscordOption {
	return func(d *Discord) {
		if l != nil {
			d.log = l
		}
	}
}

// Discord lists the scheduled events of one guild via the bot API.
type Discord struct {
	guildID string
	token   string
	baseURL string
	client  *http.Client
	log     logger.Logger
}

// NewDiscord creates a guild-events source with configuration options.
func NewDiscord(guildID, token string, opts ...DiscordOption) *Discord {
	d := &Discord{
		guildID: guildID,
		token:   token,
		baseURL: defaultBaseURL,
		client:  newHTTPClient(defaultTimeout),
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// List fetches the guild's scheduled events. A 429 maps to
// feed.ErrRateLimited with the advisory body logged; any other non-2xx
// status is a hard failure.
func (d *Discord) List(ctx context.Context) ([]model.RawEvent, error) {
	url := fmt.Sprintf("%s/guilds/%s/scheduled-events", d.baseURL, d.guildID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+d.token)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call upstream: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		// Body is advisory only; retry-after scheduling is out of scope.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		d.log.Warn(ctx, "upstream rate limited",
			logger.String("guild_id", d.guildID),
			logger.String("body", string(body)),
		)
		return nil, feed.ErrRateLimited
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		d.log.Error(ctx, "upstream error response",
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(body)),
		)
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	var events []model.RawEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}
	return events, nil
}
