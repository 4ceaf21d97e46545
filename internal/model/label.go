package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Label tags a note. Removal is a soft delete: IsActive flips to false,
// the row stays.
type Label struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	NoteID    uuid.UUID `json:"note_id" gorm:"type:char(36);not null;index"`
	LabelName string    `json:"label_name" gorm:"size:255;not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (l *Label) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
