package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note represents a single note owned by a user.
// IsPinned and IsArchived are mutually exclusive; trashing a note unpins it.
// The service layer enforces both rules on every write.
type Note struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsPinned    bool      `json:"is_pinned" gorm:"default:false"`
	IsArchived  bool      `json:"is_archived" gorm:"default:false"`
	IsTrashed   bool      `json:"is_trashed" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Labels []Label `json:"labels,omitempty" gorm:"foreignKey:NoteID"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
