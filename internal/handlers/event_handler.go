package handlers

import (
	"errors"
	"net/http"

	"eventspot/internal/helpers"
	"eventspot/internal/repositories"
	"eventspot/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	ingestion *services.IngestionService
	queries   *services.QueryService
	logger    *zap.Logger
}

func NewEventHandler(ingestion *services.IngestionService, queries *services.QueryService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		ingestion: ingestion,
		queries:   queries,
		logger:    logger,
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid multipart form data.")
		return
	}

	event, err := h.ingestion.Create(c.Request.Context(), form)
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}

	h.queries.InvalidateList(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"event":   event,
	})
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.queries.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Events retrieved successfully.",
		"events":  events,
	})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	slug := c.Param("slug")

	event, err := h.queries.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		h.logger.Error("failed to get event", zap.String("slug", slug), zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event retrieved successfully.",
		"event":   event,
	})
}

func (h *EventHandler) ListSimilarEvents(c *gin.Context) {
	slug := c.Param("slug")

	events, err := h.queries.Similar(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		h.logger.Error("failed to list similar events", zap.String("slug", slug), zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving similar events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Similar events retrieved successfully.",
		"events":  events,
	})
}

// respondPipelineError maps ingestion failures to HTTP statuses: structural
// and field errors are the client's fault, upload and persistence failures
// are not. Upload and persistence error text is passed through.
func (h *EventHandler) respondPipelineError(c *gin.Context, err error) {
	var fieldErr *services.MalformedFieldError
	var uploadErr *services.UploadError
	var persistErr *services.PersistError

	switch {
	case errors.Is(err, services.ErrMissingImage):
		helpers.RespondWithError(c, http.StatusBadRequest, "Image file is required.")
	case errors.Is(err, services.ErrMalformedSubmission):
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid submission format.")
	case errors.As(err, &fieldErr):
		helpers.RespondWithError(c, http.StatusBadRequest, fieldErr.Error())
	case errors.As(err, &uploadErr):
		h.logger.Error("event image upload failed", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, uploadErr.Error())
	case errors.As(err, &persistErr):
		h.logger.Error("event persistence failed", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, persistErr.Error())
	default:
		h.logger.Error("event creation failed", zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
	}
}
