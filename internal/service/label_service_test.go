package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/cache"
	apperrors "github.com/Ananya-Krishnappa/fundoo-notes/internal/errors"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/model"
)

func TestLabelService_Create(t *testing.T) {
	noteID := uuid.New()
	note := &model.Note{ID: noteID, UserID: uuid.New()}

	t.Run("defaults name and invalidates the note's listing", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		noteRepo.On("FindByID", mock.Anything, noteID).Return(note, nil)
		repo := new(MockLabelRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Label")).Return(nil)
		store := newFakeCache()
		svc := NewLabelService(repo, noteRepo, store)

		label, err := svc.Create(context.Background(), noteID, "")
		require.NoError(t, err)
		assert.Equal(t, "Untitled Label", label.LabelName)
		assert.True(t, label.IsActive)
		assert.Contains(t, store.deletes, LabelListingKey(noteID))
	})

	t.Run("unknown note", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		noteRepo.On("FindByID", mock.Anything, noteID).Return(nil, gorm.ErrRecordNotFound)
		repo := new(MockLabelRepository)
		store := newFakeCache()
		svc := NewLabelService(repo, noteRepo, store)

		_, err := svc.Create(context.Background(), noteID, "work")
		assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Empty(t, store.deletes)
	})
}

func TestLabelService_ListByNote_ReadThrough(t *testing.T) {
	noteID := uuid.New()
	labels := []model.Label{
		{ID: uuid.New(), NoteID: noteID, LabelName: "work", IsActive: true},
		{ID: uuid.New(), NoteID: noteID, LabelName: "old", IsActive: false},
	}

	t.Run("miss populates the cache", func(t *testing.T) {
		repo := new(MockLabelRepository)
		repo.On("FindByNote", mock.Anything, noteID).Return(labels, nil).Once()
		store := newFakeCache()
		svc := NewLabelService(repo, new(MockNoteRepository), store)

		got, err := svc.ListByNote(context.Background(), noteID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.True(t, store.has(LabelListingKey(noteID)))
		repo.AssertExpectations(t)
	})

	t.Run("hit skips the store", func(t *testing.T) {
		repo := new(MockLabelRepository)
		store := newFakeCache()
		payload, err := json.Marshal(labels)
		require.NoError(t, err)
		require.NoError(t, store.Set(context.Background(), LabelListingKey(noteID), payload, cache.ListingTTL))
		svc := NewLabelService(repo, new(MockNoteRepository), store)

		got, err := svc.ListByNote(context.Background(), noteID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertNotCalled(t, "FindByNote", mock.Anything, mock.Anything)
	})

	t.Run("expired entry falls through", func(t *testing.T) {
		repo := new(MockLabelRepository)
		repo.On("FindByNote", mock.Anything, noteID).Return(labels, nil).Once()
		store := newFakeCache()
		payload, _ := json.Marshal(labels[:1])
		require.NoError(t, store.Set(context.Background(), LabelListingKey(noteID), payload, cache.ListingTTL))
		store.expireNow(LabelListingKey(noteID))
		svc := NewLabelService(repo, new(MockNoteRepository), store)

		got, err := svc.ListByNote(context.Background(), noteID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertExpectations(t)
	})
}

func TestLabelService_Update(t *testing.T) {
	noteID := uuid.New()

	t.Run("soft remove invalidates the note's listing", func(t *testing.T) {
		label := &model.Label{ID: uuid.New(), NoteID: noteID, LabelName: "work", IsActive: true}
		repo := new(MockLabelRepository)
		repo.On("FindByID", mock.Anything, label.ID).Return(label, nil)
		repo.On("Update", mock.Anything, label).Return(nil)
		store := newFakeCache()
		svc := NewLabelService(repo, new(MockNoteRepository), store)

		got, err := svc.Update(context.Background(), label.ID, "", false)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
		assert.Equal(t, "work", got.LabelName, "empty name keeps the current one")
		assert.Contains(t, store.deletes, LabelListingKey(noteID))
	})

	t.Run("rename", func(t *testing.T) {
		label := &model.Label{ID: uuid.New(), NoteID: noteID, LabelName: "work", IsActive: true}
		repo := new(MockLabelRepository)
		repo.On("FindByID", mock.Anything, label.ID).Return(label, nil)
		repo.On("Update", mock.Anything, label).Return(nil)
		svc := NewLabelService(repo, new(MockNoteRepository), newFakeCache())

		got, err := svc.Update(context.Background(), label.ID, "personal", true)
		require.NoError(t, err)
		assert.Equal(t, "personal", got.LabelName)
		assert.True(t, got.IsActive)
	})

	t.Run("unknown label", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockLabelRepository)
		repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
		svc := NewLabelService(repo, new(MockNoteRepository), newFakeCache())

		_, err := svc.Update(context.Background(), id, "x", true)
		assert.ErrorIs(t, err, apperrors.ErrLabelNotFound)
	})
}
