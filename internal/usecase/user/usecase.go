package user

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "sps-user-service/internal/domain/user"
	"sps-user-service/internal/store"
	apperrors "sps-user-service/pkg/errors"
)

// usecase implements the business rules for user management atop the store.
type usecase struct {
	store    Store               // Store for user records
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new user Usecase with the provided store and logger.
func New(s Store, log *zap.Logger) Usecase {
	return &usecase{store: s, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a typed
// ValidationError carrying the contract's message for the first failing
// rule, with the remaining messages as details.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("", "Validation failed")
	}

	var messages []string
	for _, e := range validationErrors {
		messages = append(messages, fieldMessage(e))
	}

	verr := apperrors.NewValidationError(strings.ToLower(validationErrors[0].Field()), messages[0])
	if len(messages) > 1 {
		verr.Details = messages
	}
	return verr
}

func fieldMessage(e validator.FieldError) string {
	switch {
	case e.Tag() == "required":
		return "Email, name, and password are required"
	case e.Field() == "Email":
		return "Please provide a valid email"
	case e.Field() == "Name":
		return "Name must be between 2 and 50 characters"
	case e.Field() == "Password":
		return "Password must be at least 6 characters long"
	case e.Field() == "Type":
		return "Type must be either 'admin' or 'standard'"
	default:
		return e.Field() + " is invalid"
	}
}

// CreateUser creates a new user after validating the request and
// checking email uniqueness.
func (uc *usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	uc.log.Info("creating user", zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("create user validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	exists, err := uc.store.EmailExists(ctx, in.Email, 0)
	if err != nil {
		uc.log.Error("failed to check email uniqueness", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("Internal server error", err)
	}
	if exists {
		uc.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.ErrEmailExists
	}

	userType := domain.Type(in.Type)
	if userType == "" {
		userType = domain.TypeStandard
	}

	u, err := uc.store.CreateUser(ctx, store.CreateInput{
		Email:    in.Email,
		Name:     in.Name,
		Password: in.Password,
		Type:     userType,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, apperrors.NewInternalError("Internal server error", err)
	}

	return &CreateUserResponse{User: u}, nil
}

// UpdateUser applies a partial update after checking that the target
// exists and that a supplied email stays unique.
func (uc *usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	if in.Email != "" {
		in.Email = domain.NormalizeEmail(in.Email)
	}
	in.Name = strings.TrimSpace(in.Name)

	uc.log.Info("updating user", zap.Int64("id", in.ID))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("update user validation failed", zap.Int64("id", in.ID), zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.store.GetUserByID(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to look up user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("Internal server error", err)
	}
	if existing == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if in.Email != "" {
		exists, err := uc.store.EmailExists(ctx, in.Email, in.ID)
		if err != nil {
			uc.log.Error("failed to check email uniqueness", zap.String("email", in.Email), zap.Error(err))
			return nil, apperrors.NewInternalError("Internal server error", err)
		}
		if exists {
			uc.log.Warn("email already exists", zap.String("email", in.Email), zap.Int64("id", in.ID))
			return nil, apperrors.ErrEmailExists
		}
	}

	u, err := uc.store.UpdateUser(ctx, in.ID, store.UpdateInput{
		Email:    in.Email,
		Name:     in.Name,
		Password: in.Password,
		Type:     domain.Type(in.Type),
	})
	if err != nil {
		uc.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("Internal server error", err)
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return &UpdateUserResponse{User: u}, nil
}

// DeleteUser removes a user. Deleting one's own account is rejected
// before the existence check.
func (uc *usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) error {
	uc.log.Info("deleting user", zap.Int64("id", in.ID), zap.Int64("requester_id", in.RequesterID))

	if in.ID == in.RequesterID {
		uc.log.Warn("user attempted to delete own account", zap.Int64("id", in.ID))
		return apperrors.NewValidationError("id", "Cannot delete your own account")
	}

	deleted, err := uc.store.DeleteUser(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return apperrors.NewInternalError("Internal server error", err)
	}
	if !deleted {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// GetUser retrieves a user by id.
func (uc *usecase) GetUser(ctx context.Context, id int64) (*GetUserResponse, error) {
	u, err := uc.store.GetUserByID(ctx, id)
	if err != nil {
		uc.log.Error("failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.NewInternalError("Internal server error", err)
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return &GetUserResponse{User: u}, nil
}

// ListUsers retrieves all users.
func (uc *usecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	users, err := uc.store.GetAllUsers(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, apperrors.NewInternalError("Internal server error", err)
	}
	return &ListUsersResponse{Users: users}, nil
}
