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

const defaultNoteTitle = "Untitled Note"

// NoteStatus selects which slice of a user's notes a listing returns.
type NoteStatus string

const (
	NoteStatusAll     NoteStatus = "all"
	NoteStatusTrash   NoteStatus = "trash"
	NoteStatusArchive NoteStatus = "archive"
)

// NoteService handles note operations. Every mutation invalidates the
// owner's cached listing after the store write succeeds; listings are served
// read-through with a 60 second TTL.
type NoteService interface {
	Create(ctx context.Context, userID uuid.UUID, title, description string, isPinned bool) (*model.Note, error)
	List(ctx context.Context, userID uuid.UUID, status NoteStatus) ([]model.Note, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Note, error)
	Update(ctx context.Context, id uuid.UUID, title, description string, isPinned bool) (*model.Note, error)
	Trash(ctx context.Context, id uuid.UUID, trashed bool) (*model.Note, error)
	Archive(ctx context.Context, id uuid.UUID, archived bool) (*model.Note, error)
	Pin(ctx context.Context, id uuid.UUID, pinned bool) (*model.Note, error)
	DeleteForever(ctx context.Context, id uuid.UUID) error
}

type noteService struct {
	repo  repository.NoteRepository
	cache cache.Store
}

// NewNoteService creates a new note service.
func NewNoteService(repo repository.NoteRepository, cache cache.Store) NoteService {
	return &noteService{repo: repo, cache: cache}
}

// NoteListingKey derives the cache key for a user's note listing.
func NoteListingKey(userID uuid.UUID) string {
	return "notes:" + userID.String()
}

// Create stores a new note. New notes are never archived or trashed.
func (s *noteService) Create(ctx context.Context, userID uuid.UUID, title, description string, isPinned bool) (*model.Note, error) {
	if title == "" {
		title = defaultNoteTitle
	}
	note := &model.Note{
		UserID:      userID,
		Title:       title,
		Description: description,
		IsPinned:    isPinned,
		IsArchived:  false,
		IsTrashed:   false,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	_ = s.cache.Delete(ctx, NoteListingKey(userID))
	return note, nil
}

// List returns the user's notes filtered by status. The cached snapshot
// always holds the unfiltered listing; filtering happens after retrieval so
// one cache entry serves every status.
func (s *noteService) List(ctx context.Context, userID uuid.UUID, status NoteStatus) ([]model.Note, error) {
	key := NoteListingKey(userID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Note
		if err := json.Unmarshal(data, &cached); err == nil {
			return filterNotes(cached, status), nil
		}
	}

	notes, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if payload, err := json.Marshal(notes); err == nil {
		_ = s.cache.Set(ctx, key, payload, cache.ListingTTL)
	}
	return filterNotes(notes, status), nil
}

// Get retrieves a single note by id.
func (s *noteService) Get(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return note, nil
}

// Update replaces title, description and the pinned flag. Pinning through an
// update unarchives the note, same as Pin.
func (s *noteService) Update(ctx context.Context, id uuid.UUID, title, description string, isPinned bool) (*model.Note, error) {
	return s.mutate(ctx, id, func(note *model.Note) {
		if title == "" {
			title = defaultNoteTitle
		}
		note.Title = title
		note.Description = description
		note.IsPinned = isPinned
		if isPinned {
			note.IsArchived = false
		}
	})
}

// Trash moves a note in or out of the trash. Trashing unpins the note.
func (s *noteService) Trash(ctx context.Context, id uuid.UUID, trashed bool) (*model.Note, error) {
	return s.mutate(ctx, id, func(note *model.Note) {
		note.IsTrashed = trashed
		if trashed {
			note.IsPinned = false
		}
	})
}

// Archive sets the archived flag. Archiving unpins the note.
func (s *noteService) Archive(ctx context.Context, id uuid.UUID, archived bool) (*model.Note, error) {
	return s.mutate(ctx, id, func(note *model.Note) {
		note.IsArchived = archived
		if archived {
			note.IsPinned = false
		}
	})
}

// Pin sets the pinned flag. Pinning unarchives the note.
func (s *noteService) Pin(ctx context.Context, id uuid.UUID, pinned bool) (*model.Note, error) {
	return s.mutate(ctx, id, func(note *model.Note) {
		note.IsPinned = pinned
		if pinned {
			note.IsArchived = false
		}
	})
}

// DeleteForever permanently removes a note.
func (s *noteService) DeleteForever(ctx context.Context, id uuid.UUID) error {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNoteNotFound
		}
		return fmt.Errorf("find note: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	_ = s.cache.Delete(ctx, NoteListingKey(note.UserID))
	return nil
}

// mutate loads the note, applies fn, persists it and invalidates the
// owner's listing. Invalidation is strictly sequenced after the store write.
func (s *noteService) mutate(ctx context.Context, id uuid.UUID, fn func(*model.Note)) (*model.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}

	fn(note)
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	_ = s.cache.Delete(ctx, NoteListingKey(note.UserID))
	return note, nil
}

func filterNotes(notes []model.Note, status NoteStatus) []model.Note {
	switch status {
	case NoteStatusTrash:
		filtered := make([]model.Note, 0, len(notes))
		for _, n := range notes {
			if n.IsTrashed {
				filtered = append(filtered, n)
			}
		}
		return filtered
	case NoteStatusArchive:
		filtered := make([]model.Note, 0, len(notes))
		for _, n := range notes {
			if n.IsArchived {
				filtered = append(filtered, n)
			}
		}
		return filtered
	default:
		return notes
	}
}
