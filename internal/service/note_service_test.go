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

func TestNoteService_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("defaults title and invalidates the listing", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Note")).Return(nil)
		store := newFakeCache()
		svc := NewNoteService(repo, store)

		note, err := svc.Create(context.Background(), userID, "", "remember the milk", false)
		require.NoError(t, err)
		assert.Equal(t, "Untitled Note", note.Title)
		assert.False(t, note.IsArchived)
		assert.False(t, note.IsTrashed)
		assert.Contains(t, store.deletes, NoteListingKey(userID))
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Note")).Return(gorm.ErrInvalidDB)
		store := newFakeCache()
		svc := NewNoteService(repo, store)

		_, err := svc.Create(context.Background(), userID, "t", "d", false)
		assert.Error(t, err)
		assert.Empty(t, store.deletes, "no invalidation without a successful write")
	})
}

func TestNoteService_List_ReadThrough(t *testing.T) {
	userID := uuid.New()
	notes := []model.Note{
		{ID: uuid.New(), UserID: userID, Title: "active"},
		{ID: uuid.New(), UserID: userID, Title: "trashed", IsTrashed: true},
		{ID: uuid.New(), UserID: userID, Title: "archived", IsArchived: true},
	}

	t.Run("miss populates the cache with the unfiltered listing", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("FindByUser", mock.Anything, userID).Return(notes, nil).Once()
		store := newFakeCache()
		svc := NewNoteService(repo, store)

		got, err := svc.List(context.Background(), userID, NoteStatusTrash)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "trashed", got[0].Title)

		cached, _ := store.Get(context.Background(), NoteListingKey(userID))
		require.NotNil(t, cached)
		var snapshot []model.Note
		require.NoError(t, json.Unmarshal(cached, &snapshot))
		assert.Len(t, snapshot, 3, "cached snapshot holds the full listing, not the filtered view")

		repo.AssertExpectations(t)
	})

	t.Run("hit serves every status filter from one snapshot", func(t *testing.T) {
		repo := new(MockNoteRepository)
		store := newFakeCache()
		payload, err := json.Marshal(notes)
		require.NoError(t, err)
		require.NoError(t, store.Set(context.Background(), NoteListingKey(userID), payload, cache.ListingTTL))
		svc := NewNoteService(repo, store)

		all, err := svc.List(context.Background(), userID, NoteStatusAll)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		trash, err := svc.List(context.Background(), userID, NoteStatusTrash)
		require.NoError(t, err)
		require.Len(t, trash, 1)
		assert.Equal(t, "trashed", trash[0].Title)

		archive, err := svc.List(context.Background(), userID, NoteStatusArchive)
		require.NoError(t, err)
		require.Len(t, archive, 1)
		assert.Equal(t, "archived", archive[0].Title)

		repo.AssertNotCalled(t, "FindByUser", mock.Anything, mock.Anything)
	})

	t.Run("expired entry falls through to the store", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("FindByUser", mock.Anything, userID).Return(notes, nil).Once()
		store := newFakeCache()
		payload, _ := json.Marshal(notes[:1])
		require.NoError(t, store.Set(context.Background(), NoteListingKey(userID), payload, cache.ListingTTL))
		store.expireNow(NoteListingKey(userID))
		svc := NewNoteService(repo, store)

		got, err := svc.List(context.Background(), userID, NoteStatusAll)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		repo.AssertExpectations(t)
	})
}

func TestNoteService_FlagInvariants(t *testing.T) {
	userID := uuid.New()

	// The repo mock hands back the same note instance so each mutation sees
	// the flags left by the previous one.
	note := &model.Note{ID: uuid.New(), UserID: userID, Title: "n"}
	repo := new(MockNoteRepository)
	repo.On("FindByID", mock.Anything, note.ID).Return(note, nil)
	repo.On("Update", mock.Anything, note).Return(nil)
	svc := NewNoteService(repo, newFakeCache())

	ctx := context.Background()

	got, err := svc.Pin(ctx, note.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsPinned)
	assert.False(t, got.IsArchived)

	got, err = svc.Archive(ctx, note.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsArchived)
	assert.False(t, got.IsPinned, "archiving unpins")

	got, err = svc.Pin(ctx, note.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsPinned)
	assert.False(t, got.IsArchived, "pinning unarchives")

	got, err = svc.Trash(ctx, note.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsTrashed)
	assert.False(t, got.IsPinned, "trashing unpins")

	got, err = svc.Update(ctx, note.ID, "renamed", "desc", true)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.True(t, got.IsPinned)
	assert.False(t, got.IsArchived)
}

func TestNoteService_MutationInvalidatesListing(t *testing.T) {
	userID := uuid.New()
	note := &model.Note{ID: uuid.New(), UserID: userID, Title: "before"}

	repo := new(MockNoteRepository)
	repo.On("FindByUser", mock.Anything, userID).Return([]model.Note{*note}, nil).Once()
	repo.On("FindByID", mock.Anything, note.ID).Return(note, nil)
	repo.On("Update", mock.Anything, note).Return(nil)
	store := newFakeCache()
	svc := NewNoteService(repo, store)

	ctx := context.Background()
	key := NoteListingKey(userID)

	// Populate the cache.
	listed, err := svc.List(ctx, userID, NoteStatusAll)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "before", listed[0].Title)
	require.True(t, store.has(key))

	// Mutate: the listing entry must be gone before the call returns.
	_, err = svc.Update(ctx, note.ID, "after", "", false)
	require.NoError(t, err)
	assert.False(t, store.has(key), "mutation must invalidate the owner's listing")

	// The next read misses, hits the store again and reflects the mutation.
	repo.On("FindByUser", mock.Anything, userID).Return([]model.Note{*note}, nil).Once()
	listed, err = svc.List(ctx, userID, NoteStatusAll)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "after", listed[0].Title)
	repo.AssertExpectations(t)
}

func TestNoteService_DeleteForever(t *testing.T) {
	userID := uuid.New()
	note := &model.Note{ID: uuid.New(), UserID: userID}

	t.Run("deletes and invalidates", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("FindByID", mock.Anything, note.ID).Return(note, nil)
		repo.On("Delete", mock.Anything, note.ID).Return(nil)
		store := newFakeCache()
		svc := NewNoteService(repo, store)

		require.NoError(t, svc.DeleteForever(context.Background(), note.ID))
		assert.Contains(t, store.deletes, NoteListingKey(userID))
	})

	t.Run("missing note", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("FindByID", mock.Anything, note.ID).Return(nil, gorm.ErrRecordNotFound)
		svc := NewNoteService(repo, newFakeCache())

		err := svc.DeleteForever(context.Background(), note.ID)
		assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
	})
}

func TestNoteService_Get_NotFound(t *testing.T) {
	repo := new(MockNoteRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
	svc := NewNoteService(repo, newFakeCache())

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}
