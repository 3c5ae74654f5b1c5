// Command smoke exercises a running gigfeed instance end to end: it checks
// health, pulls the event feed, records interest on the first event, and
// prints a short summary.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/okian/gigfeed/internal/domain/model"
	"github.com/okian/gigfeed/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout    = 15 * time.Second
	defaultRunTimeout = 2 * time.Minute
	defaultInterest   = 3
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:3000", "Base URL of the service")
		eventType = flag.String("type", "", "Optional type filter: irl, virtual, radio, other")
		force     = flag.Bool("force", false, "Bypass the cache freshness window")
		interest  = flag.Int("interest", defaultInterest, "Number of interest increments to record on the first event")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	if err := run(ctx, *baseURL, *eventType, *force, *interest, *timeout); err != nil {
		logger.Get().Error(ctx, "smoke run failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, baseURL, eventType string, force bool, interest int, timeout time.Duration) error {
	log := logger.Get()
	client := &http.Client{Timeout: timeout}

	// Step 1: Check service health
	if err := checkHealth(ctx, client, baseURL); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info(ctx, "service is healthy", logger.String("baseURL", baseURL))

	// Step 2: Pull the event feed
	events, err := fetchEvents(ctx, client, baseURL, eventType, force)
	if err != nil {
		return fmt.Errorf("event fetch failed: %w", err)
	}
	log.Info(ctx, "fetched events",
		logger.Int("count", len(events)),
		logger.String("type", eventType),
		logger.Bool("force", force))

	for _, ev := range events {
		log.Info(ctx, "event",
			logger.String("id", ev.ID),
			logger.String("name", ev.Name),
			logger.String("type", string(ev.Type)),
			logger.String("status", string(ev.Status.Code)),
			logger.Int("tags", len(ev.Tags)))
	}

	if len(events) == 0 {
		log.Warn(ctx, "no events to record interest on")
		return nil
	}

	// Step 3: Record interest on the first event
	target := events[0].ID
	var last *model.Stats
	for i := 0; i < interest; i++ {
		action := model.ActionGoing
		if i%2 == 1 {
			action = model.ActionInterested
		}
		last, err = postInterest(ctx, client, baseURL, target, action)
		if err != nil {
			return fmt.Errorf("interest submission failed: %w", err)
		}
	}
	if last != nil {
		log.Info(ctx, "recorded interest",
			logger.String("eventID", target),
			logger.Int("going", int(last.Going())),
			logger.Int("interested", int(last.Interested())))
	}

	// Step 4: Confirm the counters show up on a fresh feed read
	events, err = fetchEvents(ctx, client, baseURL, "", true)
	if err != nil {
		return fmt.Errorf("verification fetch failed: %w", err)
	}
	for _, ev := range events {
		if ev.ID == target && ev.Stats != nil {
			log.Info(ctx, "verified counters on feed",
				logger.Int("going", int(ev.Stats.Going())),
				logger.Int("interested", int(ev.Stats.Interested())))
		}
	}

	return nil
}

func checkHealth(ctx context.Context, client *http.Client, baseURL string) error {
	resp, err := doGet(ctx, client, baseURL+"/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func fetchEvents(ctx context.Context, client *http.Client, baseURL, eventType string, force bool) ([]model.EnrichedEvent, error) {
	url := baseURL + "/api/events"
	sep := "?"
	if eventType != "" {
		url += sep + "type=" + eventType
		sep = "&"
	}
	if force {
		url += sep + "force=1"
	}

	resp, err := doGet(ctx, client, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var events []model.EnrichedEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

func postInterest(ctx context.Context, client *http.Client, baseURL, eventID string, action model.InterestAction) (*model.Stats, error) {
	payload, err := json.Marshal(map[string]string{"action": string(action)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/api/events/%s/interest", baseURL, eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	stats := &model.Stats{}
	if err := json.NewDecoder(resp.Body).Decode(stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	return stats, nil
}

func doGet(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return client.Do(req)
}
