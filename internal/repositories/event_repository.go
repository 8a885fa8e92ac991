package repositories

import (
	"context"
	"errors"

	"eventspot/internal/models"
	"gorm.io/gorm"
)

// EventRepository persists and queries event records. Events are created
// once and read many times; there are no update or delete operations.
type EventRepository interface {
	FindAll(ctx context.Context) ([]models.Event, error)
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
}

type gormEventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &gormEventRepository{db: db}
}

func (r *gormEventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *gormEventRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *gormEventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}
