package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/model"
)

// LabelRepository defines persistence operations for labels.
type LabelRepository interface {
	Create(ctx context.Context, label *model.Label) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Label, error)
	FindByNote(ctx context.Context, noteID uuid.UUID) ([]model.Label, error)
	Update(ctx context.Context, label *model.Label) error
}

type labelRepository struct {
	db *gorm.DB
}

// NewLabelRepository builds a GORM-backed repository.
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &labelRepository{db: db}
}

func (r *labelRepository) Create(ctx context.Context, label *model.Label) error {
	return r.db.WithContext(ctx).Create(label).Error
}

func (r *labelRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	var label model.Label
	if err := r.db.WithContext(ctx).First(&label, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *labelRepository) FindByNote(ctx context.Context, noteID uuid.UUID) ([]model.Label, error) {
	var labels []model.Label
	if err := r.db.WithContext(ctx).Where("note_id = ?", noteID).Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *labelRepository) Update(ctx context.Context, label *model.Label) error {
	return r.db.WithContext(ctx).Model(label).
		Select("LabelName", "IsActive").
		Updates(label).Error
}
