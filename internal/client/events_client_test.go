package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventspot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetEventDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/events/launch", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Event retrieved successfully.",
			"event":   models.Event{Slug: "launch", Title: "Launch"},
		})
	}))
	defer srv.Close()

	c := NewEventsClient(srv.URL, zap.NewNop())

	event, err := c.GetEvent(context.Background(), "launch")
	require.NoError(t, err)
	assert.Equal(t, "Launch", event.Title)
}

func TestGetEventNotFoundIsDistinctFromUpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "absent event", status: http.StatusNotFound, wantErr: ErrEventNotFound},
		{name: "upstream broken", status: http.StatusInternalServerError, wantErr: ErrUpstream},
		{name: "upstream misbehaving", status: http.StatusBadGateway, wantErr: ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewEventsClient(srv.URL, zap.NewNop())

			_, err := c.GetEvent(context.Background(), "launch")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetEventUnreachableAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewEventsClient(srv.URL, zap.NewNop())

	_, err := c.GetEvent(context.Background(), "launch")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestListEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/events", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"events": []models.Event{{Slug: "a"}, {Slug: "b"}},
		})
	}))
	defer srv.Close()

	c := NewEventsClient(srv.URL, zap.NewNop())

	events, err := c.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestListSimilarEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/events/launch/similar", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"events": []models.Event{{Slug: "other"}},
		})
	}))
	defer srv.Close()

	c := NewEventsClient(srv.URL, zap.NewNop())

	events, err := c.ListSimilarEvents(context.Background(), "launch")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "other", events[0].Slug)
}
