package user

import (
	"context"
	"fmt"

	"flexspace/models"
)

// GetUserByID retrieves one user.
func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, fmt.Errorf("user with id %s not found", id)
	}
	return usr, nil
}

// GetAllUsers returns every account.
func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetAll(ctx)
}

// UpdateProfile applies self-service profile changes.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	usr, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		usr.Name = req.Name
	}
	if req.Phone != "" {
		usr.Phone = req.Phone
	}
	if req.ProfileImageURL != "" {
		usr.ProfileImageURL = req.ProfileImageURL
	}

	if err := s.Repo.Update(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// UpdateFCMToken stores the user's current push token.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	return s.Repo.UpdateFCMToken(ctx, id, token)
}
