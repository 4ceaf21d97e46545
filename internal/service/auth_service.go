package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/auth"
	apperrors "github.com/Ananya-Krishnappa/fundoo-notes/internal/errors"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/mail"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/model"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and the password reset flows.
type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, phoneNumber, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken string, user *model.User, err error)
	// RequestPasswordReset issues a reset token for the account behind email
	// and best-effort sends the reset link by mail. The send can never fail
	// the request.
	RequestPasswordReset(ctx context.Context, email string) (resetLink string, err error)
	// CompletePasswordReset validates the raw token, updates the password,
	// then consumes the token. The three steps are independent; see the
	// comments inline for the partial-failure stance.
	CompletePasswordReset(ctx context.Context, userID uuid.UUID, rawToken, newPassword string) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokens    *auth.ResetTokenManager
	jwt       *auth.JWTService
	mailer    mail.Mailer
	clientURL string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *auth.ResetTokenManager,
	jwt *auth.JWTService,
	mailer mail.Mailer,
	clientURL string,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		jwt:       jwt,
		mailer:    mailer,
		clientURL: clientURL,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, firstName, lastName, email, phoneNumber, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns a signed access token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, user, nil
}

// RequestPasswordReset looks up the user, issues a fresh reset token
// (replacing any outstanding one) and mails the reset link.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	rawToken, _, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return "", err
	}

	link := fmt.Sprintf("%s/passwordReset?token=%s&id=%s", s.clientURL, rawToken, user.ID)

	// Fire-and-forget: the token is already issued, a delivery failure must
	// not fail the request.
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.FirstName, link); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to send password reset email")
	}
	return link, nil
}

// CompletePasswordReset applies the new password after validating the token.
func (s *authService) CompletePasswordReset(ctx context.Context, userID uuid.UUID, rawToken, newPassword string) error {
	if err := s.tokens.Validate(ctx, userID, rawToken); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// The password is already changed; a failed consume leaves a
	// consumed-but-undeleted token that the store TTL evicts within the
	// hour, so the failure is logged and swallowed.
	if err := s.tokens.Consume(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to consume reset token after password update")
	}
	return nil
}
