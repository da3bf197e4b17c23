package transport

import (
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/auth/repository"

	"github.com/google/uuid"
)

// LoginRequest is the request body for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest is the request body for registering an account.
type CreateUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Name     string   `json:"name" validate:"required,max=200"`
	Password string   `json:"password" validate:"required,min=8,max=128"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=admin user"`
}

// ChangePasswordRequest is the request body for rotating a password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

// SetRolesRequest is the request body for replacing a user's roles.
type SetRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=admin user"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse carries the signed access token and the signed-in user.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

// ToUserResponse maps a stored user to its API representation.
func ToUserResponse(u repository.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses maps a slice of stored users.
func ToUserResponses(users []repository.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
