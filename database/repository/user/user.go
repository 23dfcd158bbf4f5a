package userRepo

import (
	"context"

	"flexspace/models"
)

// UserRepository defines data access for the users collection.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateFCMToken(ctx context.Context, id, token string) error
	SetTokenHash(ctx context.Context, id, tokenHash string) error
	Delete(ctx context.Context, id string) error
}
