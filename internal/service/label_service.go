package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/cache"
	apperrors "github.com/Ananya-Krishnappa/fundoo-notes/internal/errors"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/model"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/repository"
)

const defaultLabelName = "Untitled Label"

// LabelService handles label operations. Per-note label listings go through
// the same read-through/write-invalidate cache protocol as note listings.
type LabelService interface {
	Create(ctx context.Context, noteID uuid.UUID, labelName string) (*model.Label, error)
	ListByNote(ctx context.Context, noteID uuid.UUID) ([]model.Label, error)
	// Update renames a label and/or flips its active flag. Setting
	// isActive=false is the soft remove; the row is never deleted.
	Update(ctx context.Context, labelID uuid.UUID, labelName string, isActive bool) (*model.Label, error)
}

type labelService struct {
	repo     repository.LabelRepository
	noteRepo repository.NoteRepository
	cache    cache.Store
}

// NewLabelService creates a new label service.
func NewLabelService(repo repository.LabelRepository, noteRepo repository.NoteRepository, cache cache.Store) LabelService {
	return &labelService{repo: repo, noteRepo: noteRepo, cache: cache}
}

// LabelListingKey derives the cache key for a note's label listing.
func LabelListingKey(noteID uuid.UUID) string {
	return "labels:" + noteID.String()
}

// Create attaches a label to an existing note.
func (s *labelService) Create(ctx context.Context, noteID uuid.UUID, labelName string) (*model.Label, error) {
	if _, err := s.noteRepo.FindByID(ctx, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}

	if labelName == "" {
		labelName = defaultLabelName
	}
	label := &model.Label{
		NoteID:    noteID,
		LabelName: labelName,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, label); err != nil {
		return nil, fmt.Errorf("create label: %w", err)
	}
	_ = s.cache.Delete(ctx, LabelListingKey(noteID))
	return label, nil
}

// ListByNote returns the note's labels, read-through cached for 60 seconds.
func (s *labelService) ListByNote(ctx context.Context, noteID uuid.UUID) ([]model.Label, error) {
	key := LabelListingKey(noteID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Label
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	labels, err := s.repo.FindByNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	if payload, err := json.Marshal(labels); err == nil {
		_ = s.cache.Set(ctx, key, payload, cache.ListingTTL)
	}
	return labels, nil
}

// Update mutates a label and invalidates its note's cached listing.
func (s *labelService) Update(ctx context.Context, labelID uuid.UUID, labelName string, isActive bool) (*model.Label, error) {
	label, err := s.repo.FindByID(ctx, labelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLabelNotFound
		}
		return nil, fmt.Errorf("find label: %w", err)
	}

	if labelName != "" {
		label.LabelName = labelName
	}
	label.IsActive = isActive
	if err := s.repo.Update(ctx, label); err != nil {
		return nil, fmt.Errorf("update label: %w", err)
	}
	_ = s.cache.Delete(ctx, LabelListingKey(label.NoteID))
	return label, nil
}
