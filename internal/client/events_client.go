package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"eventspot/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrEventNotFound means the API answered and the event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrUpstream means the API could not be reached or answered with an
	// unexpected status. Callers can tell it apart from an absent event.
	ErrUpstream = errors.New("events API unavailable")
)

// EventsClient fetches events from the JSON API over HTTP, the way the
// rendered pages consume them.
type EventsClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewEventsClient(baseURL string, logger *zap.Logger) *EventsClient {
	return &EventsClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (c *EventsClient) ListEvents(ctx context.Context) ([]models.Event, error) {
	var result struct {
		Events []models.Event `json:"events"`
	}
	if err := c.get(ctx, fmt.Sprintf("%s/v1/events", c.baseURL), &result); err != nil {
		return nil, err
	}
	return result.Events, nil
}

func (c *EventsClient) GetEvent(ctx context.Context, slug string) (*models.Event, error) {
	var result struct {
		Event *models.Event `json:"event"`
	}
	if err := c.get(ctx, fmt.Sprintf("%s/v1/events/%s", c.baseURL, slug), &result); err != nil {
		return nil, err
	}
	if result.Event == nil {
		return nil, ErrEventNotFound
	}
	return result.Event, nil
}

func (c *EventsClient) ListSimilarEvents(ctx context.Context, slug string) ([]models.Event, error) {
	var result struct {
		Events []models.Event `json:"events"`
	}
	if err := c.get(ctx, fmt.Sprintf("%s/v1/events/%s/similar", c.baseURL, slug), &result); err != nil {
		return nil, err
	}
	return result.Events, nil
}

func (c *EventsClient) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("events API request failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrEventNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("events API returned error", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}
