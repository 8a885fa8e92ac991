package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventspot/internal/client"
	"eventspot/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAPI serves the events JSON API the pages consume.
func fakeAPI(t *testing.T, events []models.Event) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/events", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(gin.H{"events": events})
	})
	mux.HandleFunc("/v1/events/", func(w http.ResponseWriter, r *http.Request) {
		for _, event := range events {
			if r.URL.Path == "/v1/events/"+event.Slug {
				json.NewEncoder(w).Encode(gin.H{"event": event})
				return
			}
			if r.URL.Path == "/v1/events/"+event.Slug+"/similar" {
				json.NewEncoder(w).Encode(gin.H{"events": []models.Event{}})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(gin.H{"message": "Event not found."})
	})
	return httptest.NewServer(mux)
}

func newPageRouter(baseURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	pages := NewPageHandler(client.NewEventsClient(baseURL, logger), logger)

	r := gin.New()
	r.GET("/", pages.Index)
	r.GET("/events/:slug", pages.EventDetail)
	return r
}

func TestEventDetailPageRendersEvent(t *testing.T) {
	api := fakeAPI(t, []models.Event{{
		Slug:      "launch",
		Title:     "Launch",
		Overview:  "A long evening of demos",
		Agenda:    []string{"Intro", "Demo"},
		Tags:      []string{"tech"},
		CreatedAt: time.Now(),
	}})
	defer api.Close()

	r := newPageRouter(api.URL)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/launch", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Launch")
	assert.Contains(t, rec.Body.String(), "Book Your Spot")
	assert.Contains(t, rec.Body.String(), "Intro")
}

func TestEventDetailPageUnknownSlugIsNotFound(t *testing.T) {
	api := fakeAPI(t, nil)
	defer api.Close()

	r := newPageRouter(api.URL)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event not found")
}

func TestEventDetailPageCollapsesUpstreamFailureToNotFound(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer api.Close()

	r := newPageRouter(api.URL)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/launch", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIndexPageListsEvents(t *testing.T) {
	api := fakeAPI(t, []models.Event{
		{Slug: "launch", Title: "Launch", CreatedAt: time.Now()},
	})
	defer api.Close()

	r := newPageRouter(api.URL)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/events/launch")
}
