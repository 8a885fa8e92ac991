package repositories

import (
	"context"
	"time"

	"eventspot/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UploadRepository tracks remote image uploads. Records are written before
// event persistence is attempted, so a persistence failure leaves behind a
// record the reconciler can collect instead of a silently orphaned object.
type UploadRepository interface {
	Record(ctx context.Context, record *models.UploadRecord) error
	// FindUnreferenced returns records older than cutoff whose URL is not
	// referenced by any event.
	FindUnreferenced(ctx context.Context, cutoff time.Time) ([]models.UploadRecord, error)
	Delete(ctx context.Context, publicID string) error
}

type gormUploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &gormUploadRepository{db: db}
}

func (r *gormUploadRepository) Record(ctx context.Context, record *models.UploadRecord) error {
	// Public IDs are content-derived, so a retried upload of the same bytes
	// hits the same record.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "public_id"}}, DoNothing: true}).
		Create(record).Error
}

func (r *gormUploadRepository) FindUnreferenced(ctx context.Context, cutoff time.Time) ([]models.UploadRecord, error) {
	var records []models.UploadRecord
	err := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Where("url NOT IN (?)", r.db.Model(&models.Event{}).Select("image")).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gormUploadRepository) Delete(ctx context.Context, publicID string) error {
	return r.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&models.UploadRecord{}).Error
}
