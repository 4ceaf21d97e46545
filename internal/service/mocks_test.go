package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/auth"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNoteRepository is a mock implementation of NoteRepository.
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLabelRepository is a mock implementation of LabelRepository.
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) Create(ctx context.Context, label *model.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockLabelRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Label), args.Error(1)
}

func (m *MockLabelRepository) FindByNote(ctx context.Context, noteID uuid.UUID) ([]model.Label, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Label), args.Error(1)
}

func (m *MockLabelRepository) Update(ctx context.Context, label *model.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

// fakeCache is an in-memory cache.Store that records hits and invalidations.
// TTLs are stored but only enforced through expireNow. It mirrors the
// fail-safe contract of the redis-backed client: a Get after Delete is a
// plain miss.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]fakeCacheEntry
	deletes []string
}

type fakeCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]fakeCacheEntry)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.value, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = fakeCacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	f.deletes = append(f.deletes, key)
	return nil
}

// expireNow force-expires a key, standing in for redis TTL eviction.
func (f *fakeCache) expireNow(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry, ok := f.entries[key]; ok {
		entry.expiresAt = time.Now().Add(-time.Second)
		f.entries[key] = entry
	}
}

func (f *fakeCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[key]
	return ok && time.Now().Before(entry.expiresAt)
}

// fakeResetTokenStore is an in-memory auth.ResetTokenStore for the reset
// flow tests.
type fakeResetTokenStore struct {
	tokens    map[uuid.UUID]*auth.ResetToken
	saveErr   error
	deleteErr error
}

func newFakeResetTokenStore() *fakeResetTokenStore {
	return &fakeResetTokenStore{tokens: make(map[uuid.UUID]*auth.ResetToken)}
}

func (s *fakeResetTokenStore) Save(ctx context.Context, token *auth.ResetToken, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tokens[token.UserID] = token
	return nil
}

func (s *fakeResetTokenStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*auth.ResetToken, error) {
	return s.tokens[userID], nil
}

func (s *fakeResetTokenStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.tokens, userID)
	return nil
}

// failMailer always fails, for exercising fire-and-forget semantics.
type failMailer struct {
	sent int
}

func (m *failMailer) SendPasswordReset(ctx context.Context, to, firstName, link string) error {
	m.sent++
	return context.DeadlineExceeded
}

// recordMailer captures the last reset link.
type recordMailer struct {
	to   string
	link string
}

func (m *recordMailer) SendPasswordReset(ctx context.Context, to, firstName, link string) error {
	m.to = to
	m.link = link
	return nil
}
