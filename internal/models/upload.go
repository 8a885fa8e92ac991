package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadRecord tracks every remote image upload so that objects orphaned by a
// late persistence failure can be garbage-collected later. Upload and persist
// are not transactional; this record is what makes the gap recoverable.
type UploadRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PublicID  string    `gorm:"uniqueIndex;not null" json:"public_id"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (record *UploadRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return
}
