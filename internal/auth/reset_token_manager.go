package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/Ananya-Krishnappa/fundoo-notes/internal/errors"
)

const (
	// ResetTokenTTL is the store-level lifetime of a reset token. Expiry is
	// enforced by redis eviction, not by an application timer: an expired
	// token is simply absent.
	ResetTokenTTL = time.Hour

	resetTokenBytes = 32
	bcryptCost      = 10
)

// ResetTokenManager issues, validates and retires password reset tokens.
// A token moves none -> issued -> (consumed | expired-evicted); issued is
// the only non-terminal state.
type ResetTokenManager struct {
	store ResetTokenStore
}

// NewResetTokenManager creates a manager over the given store.
func NewResetTokenManager(store ResetTokenStore) *ResetTokenManager {
	return &ResetTokenManager{store: store}
}

// Issue generates a 256-bit random token for the user, stores its bcrypt
// hash with a one hour TTL and returns the raw token for the emailed reset
// link. Saving replaces any earlier token for the same user.
func (m *ResetTokenManager) Issue(ctx context.Context, userID uuid.UUID) (rawToken string, expiresAt time.Time, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, fmt.Errorf("generate reset token: %w", err)
	}
	rawToken = hex.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(rawToken), bcryptCost)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("hash reset token: %w", err)
	}

	now := time.Now()
	expiresAt = now.Add(ResetTokenTTL)
	token := &ResetToken{
		UserID:    userID,
		TokenHash: string(hash),
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := m.store.Save(ctx, token, ResetTokenTTL); err != nil {
		return "", time.Time{}, err
	}
	return rawToken, expiresAt, nil
}

// Validate checks rawToken against the stored hash for the user. An absent
// token (never issued, already consumed, or evicted on expiry) and a hash
// mismatch both return ErrInvalidResetToken; a mismatch leaves the stored
// token in place so the user can retry until the TTL elapses.
func (m *ResetTokenManager) Validate(ctx context.Context, userID uuid.UUID, rawToken string) error {
	token, err := m.store.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if token == nil {
		return apperrors.ErrInvalidResetToken
	}
	if err := bcrypt.CompareHashAndPassword([]byte(token.TokenHash), []byte(rawToken)); err != nil {
		return apperrors.ErrInvalidResetToken
	}
	return nil
}

// Consume retires the user's token. Callers invoke it only after the
// password update has succeeded, so a deletion failure leaves a harmless
// consumed-but-undeleted row that the store TTL evicts.
func (m *ResetTokenManager) Consume(ctx context.Context, userID uuid.UUID) error {
	return m.store.DeleteByUserID(ctx, userID)
}
