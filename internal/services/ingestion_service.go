package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"eventspot/internal/helpers"
	"eventspot/internal/imagestore"
	"eventspot/internal/models"
	"eventspot/internal/repositories"
	"go.uber.org/zap"
)

// IngestionService turns a parsed multipart submission into a stored event.
// The pipeline is strictly sequential and ordered cheapest-validate-first:
// field decoding fails before any remote upload is attempted, and a failed
// upload prevents persistence.
type IngestionService struct {
	events  repositories.EventRepository
	uploads repositories.UploadRepository
	store   imagestore.Store
	folder  string
	logger  *zap.Logger
}

func NewIngestionService(
	events repositories.EventRepository,
	uploads repositories.UploadRepository,
	store imagestore.Store,
	folder string,
	logger *zap.Logger,
) *IngestionService {
	return &IngestionService{
		events:  events,
		uploads: uploads,
		store:   store,
		folder:  folder,
		logger:  logger,
	}
}

func (s *IngestionService) Create(ctx context.Context, form *multipart.Form) (*models.Event, error) {
	fields := firstValues(form.Value)

	if fields["title"] == "" || fields["description"] == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrMalformedSubmission)
	}

	files := form.File["image"]
	if len(files) == 0 {
		return nil, ErrMissingImage
	}

	tags, err := helpers.DecodeStringList(fields["tags"])
	if err != nil {
		return nil, &MalformedFieldError{Field: "tags", Err: err}
	}
	agenda, err := helpers.DecodeStringList(fields["agenda"])
	if err != nil {
		return nil, &MalformedFieldError{Field: "agenda", Err: err}
	}

	content, err := helpers.ReadImageFile(files[0])
	if err != nil {
		return nil, &MalformedFieldError{Field: "image", Err: err}
	}

	slug := fields["slug"]
	if slug == "" {
		slug = helpers.Slugify(fields["title"])
	}

	result, err := s.store.Upload(ctx, content, s.folder)
	if err != nil {
		return nil, &UploadError{Err: err}
	}

	// Record the upload before persisting so a late failure leaves a
	// collectable trace, not a silent orphan. A failed record is logged
	// and does not abort the request.
	record := &models.UploadRecord{PublicID: result.PublicID, URL: result.URL}
	if err := s.uploads.Record(ctx, record); err != nil {
		s.logger.Warn("failed to record upload",
			zap.String("public_id", result.PublicID),
			zap.Error(err),
		)
	}

	event := &models.Event{
		Slug:        slug,
		Title:       fields["title"],
		Description: fields["description"],
		Overview:    fields["overview"],
		Organizer:   fields["organizer"],
		Date:        fields["date"],
		Time:        fields["time"],
		Location:    fields["location"],
		Mode:        fields["mode"],
		Audience:    fields["audience"],
		Image:       result.URL,
		Tags:        tags,
		Agenda:      agenda,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, &PersistError{Err: err}
	}

	return event, nil
}

func firstValues(values map[string][]string) map[string]string {
	fields := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			fields[key] = vals[0]
		}
	}
	return fields
}
