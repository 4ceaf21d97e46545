package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const resetTokenKeyPrefix = "reset_token:"

// ResetToken is the persisted form of an outstanding password reset token.
// Only the bcrypt hash of the raw token is stored.
type ResetToken struct {
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ResetTokenStore persists at most one reset token per user, with
// store-level TTL eviction. Unlike the listing cache, connectivity errors
// propagate: a token lookup that fails must not be mistaken for an absent
// token.
type ResetTokenStore interface {
	// Save atomically replaces any existing token for the user.
	Save(ctx context.Context, token *ResetToken, ttl time.Duration) error
	// FindByUserID returns nil without error when no token exists.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*ResetToken, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type redisResetTokenStore struct {
	client *redis.Client
}

var _ ResetTokenStore = (*redisResetTokenStore)(nil)

// NewResetTokenStore creates a redis-backed reset token store. Keying by
// user id makes Save an atomic upsert, so the at-most-one-token-per-user
// invariant holds without a delete-then-insert sequence.
func NewResetTokenStore(client *redis.Client) ResetTokenStore {
	return &redisResetTokenStore{client: client}
}

func resetTokenKey(userID uuid.UUID) string {
	return resetTokenKeyPrefix + userID.String()
}

func (s *redisResetTokenStore) Save(ctx context.Context, token *ResetToken, ttl time.Duration) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal reset token: %w", err)
	}
	if err := s.client.Set(ctx, resetTokenKey(token.UserID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

func (s *redisResetTokenStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*ResetToken, error) {
	data, err := s.client.Get(ctx, resetTokenKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find reset token: %w", err)
	}
	var token ResetToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("unmarshal reset token: %w", err)
	}
	return &token, nil
}

func (s *redisResetTokenStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, resetTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}
	return nil
}
