package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "sps-user-service/internal/domain/user"
	apperrors "sps-user-service/pkg/errors"
	"sps-user-service/pkg/security"
)

// Store defines the store operations authentication depends on.
// GetUserByEmail is the one read path that returns the password hash.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// LoginRequest represents login credentials.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse carries the issued token and the stripped user record.
type LoginResponse struct {
	Token string
	User  *domain.User
}

// Usecase defines the interface for authentication operations.
type Usecase interface {
	Login(ctx context.Context, in LoginRequest) (*LoginResponse, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

type usecase struct {
	store  Store
	tokens *security.TokenManager
	log    *zap.Logger
}

// New creates a new auth Usecase.
func New(s Store, tokens *security.TokenManager, log *zap.Logger) Usecase {
	return &usecase{store: s, tokens: tokens, log: log}
}

// Login verifies credentials and issues a signed, time-limited session
// token. Unknown email and wrong password produce the identical error so
// a caller cannot probe which accounts exist.
func (uc *usecase) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperrors.NewValidationError("", "Email and password are required")
	}

	email := domain.NormalizeEmail(in.Email)

	u, err := uc.store.GetUserByEmail(ctx, email)
	if err != nil {
		uc.log.Error("failed to look up user by email", zap.Error(err))
		return nil, apperrors.NewInternalError("Internal server error", err)
	}
	if u == nil {
		uc.log.Warn("login attempt for unknown email", zap.String("email", email))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !security.CheckPassword(in.Password, u.Password) {
		uc.log.Warn("login attempt with wrong password", zap.Int64("user_id", u.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := uc.tokens.Sign(u)
	if err != nil {
		uc.log.Error("failed to sign token", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("Internal server error", err)
	}

	uc.log.Info("user logged in", zap.Int64("user_id", u.ID), zap.String("type", string(u.Type)))

	return &LoginResponse{
		Token: token,
		User:  u.Sanitized(),
	}, nil
}

// Profile returns the stripped record of the authenticated user.
func (uc *usecase) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := uc.store.GetUserByID(ctx, userID)
	if err != nil {
		uc.log.Error("failed to get profile", zap.Int64("user_id", userID), zap.Error(err))
		return nil, apperrors.NewInternalError("Internal server error", err)
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}
