package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"eventspot/internal/client"
	"eventspot/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// bookingPlaceholder stands in for a real booking count until booking
// transactions exist.
const bookingPlaceholder = 10

// PageHandler renders the server-side pages. It reads events through the
// JSON API like any other consumer. An absent event and an unreachable API
// are distinct client errors, but both collapse to the not-found page.
type PageHandler struct {
	events    *client.EventsClient
	templates *template.Template
	logger    *zap.Logger
}

func NewPageHandler(events *client.EventsClient, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		events:    events,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger:    logger,
	}
}

func (h *PageHandler) Index(c *gin.Context) {
	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load events for index page", zap.Error(err))
		h.render(c, http.StatusInternalServerError, "error.html", nil)
		return
	}

	h.render(c, http.StatusOK, "index.html", gin.H{
		"Events": events,
	})
}

func (h *PageHandler) EventDetail(c *gin.Context) {
	slug := c.Param("slug")

	event, err := h.events.GetEvent(c.Request.Context(), slug)
	if err != nil {
		if !errors.Is(err, client.ErrEventNotFound) {
			h.logger.Error("failed to fetch event for detail page",
				zap.String("slug", slug),
				zap.Error(err),
			)
		}
		h.render(c, http.StatusNotFound, "notfound.html", nil)
		return
	}

	similar, err := h.events.ListSimilarEvents(c.Request.Context(), slug)
	if err != nil {
		// The page still renders without the similar section.
		h.logger.Warn("failed to fetch similar events", zap.String("slug", slug), zap.Error(err))
		similar = []models.Event{}
	}

	h.render(c, http.StatusOK, "event.html", gin.H{
		"Event":    event,
		"Similar":  similar,
		"Bookings": bookingPlaceholder,
	})
}

func (h *PageHandler) render(c *gin.Context, status int, name string, data interface{}) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		h.logger.Error("template rendering failed", zap.String("template", name), zap.Error(err))
	}
}
