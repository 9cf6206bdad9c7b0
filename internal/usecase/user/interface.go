package user

import (
	"context"

	domain "sps-user-service/internal/domain/user"
	"sps-user-service/internal/store"
)

// Store defines the user-store operations the usecase depends on.
// It abstracts the in-memory store so tests can substitute a mock.
type Store interface {
	CreateUser(ctx context.Context, in store.CreateInput) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, in store.UpdateInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
}

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) error
	GetUser(ctx context.Context, id int64) (*GetUserResponse, error)
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
}
