package user

import domain "sps-user-service/internal/domain/user"

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required,min=2,max=50"`
	Password string `validate:"required,min=6"`
	Type     string `validate:"omitempty,oneof=admin standard"`
}

// UpdateUserRequest represents the request payload for a partial update.
// Empty fields are left untouched on the target record.
type UpdateUserRequest struct {
	ID       int64
	Email    string `validate:"omitempty,email"`
	Name     string `validate:"omitempty,min=2,max=50"`
	Password string `validate:"omitempty,min=6"`
	Type     string `validate:"omitempty,oneof=admin standard"`
}

// DeleteUserRequest represents the request payload for deleting a user.
// RequesterID identifies the authenticated caller; deleting one's own
// account is rejected.
type DeleteUserRequest struct {
	RequesterID int64
	ID          int64
}

// CreateUserResponse carries the created user, stripped of the password.
type CreateUserResponse struct {
	User *domain.User
}

// UpdateUserResponse carries the updated user, stripped of the password.
type UpdateUserResponse struct {
	User *domain.User
}

// GetUserResponse carries a single user, stripped of the password.
type GetUserResponse struct {
	User *domain.User
}

// ListUsersResponse carries all users, each stripped of the password.
type ListUsersResponse struct {
	Users []*domain.User
}
