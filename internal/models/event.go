package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	Overview    string         `json:"overview"`
	Organizer   string         `json:"organizer"`
	Date        string         `json:"date"`
	Time        string         `json:"time"`
	Location    string         `json:"location"`
	Mode        string         `json:"mode"`
	Audience    string         `json:"audience"`
	Image       string         `gorm:"not null" json:"image"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Agenda      pq.StringArray `gorm:"type:text[]" json:"agenda"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
