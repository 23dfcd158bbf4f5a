package user

import (
	"context"
	"fmt"
	"time"

	userRepo "flexspace/database/repository/user"
	"flexspace/models"
	"flexspace/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 24 * time.Hour

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// RegisterUser creates an account and issues a session token.
func (s *DefaultUserService) RegisterUser(ctx context.Context, req models.RegisterUserRequest) (*models.AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleMember,
		Phone:        req.Phone,
	}
	if err := s.Repo.Create(ctx, usr); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, usr)
}

// AuthenticateUser verifies credentials and issues a session token.
func (s *DefaultUserService) AuthenticateUser(ctx context.Context, req models.AuthenticateUserRequest) (*models.AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueSession(ctx, usr)
}

// issueSession signs a JWT, stores its hash on the user record and primes
// the auth cache so the middleware can validate without a DB read.
func (s *DefaultUserService) issueSession(ctx context.Context, usr *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, usr.Role, sessionDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, usr.ID, tokenHash); err != nil {
		return nil, err
	}

	cacheKey := utils.AuthCachePrefix + usr.ID
	_ = utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, time.Hour).Err()

	usr.TokenHash = tokenHash
	return &models.AuthResponse{Token: token, User: usr}, nil
}
