package user

import (
	"context"

	"flexspace/models"
)

// UserService manages accounts, sessions and profiles.
type UserService interface {
	RegisterUser(ctx context.Context, req models.RegisterUserRequest) (*models.AuthResponse, error)
	AuthenticateUser(ctx context.Context, req models.AuthenticateUserRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
}
