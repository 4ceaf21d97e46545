package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/model"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Note, error)
	// FindByUser returns the full unfiltered listing for the owner; status
	// filtering happens in the service layer after cache retrieval.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Note, error)
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository builds a GORM-backed repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Preload("Labels").First(&note, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).Preload("Labels").
		Where("user_id = ?", userID).
		Order("is_pinned DESC, updated_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	// Save with Select so false flags are written too; a plain Updates call
	// skips zero values.
	return r.db.WithContext(ctx).Model(note).
		Select("Title", "Description", "IsPinned", "IsArchived", "IsTrashed").
		Updates(note).Error
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, "id = ?", id).Error
}
