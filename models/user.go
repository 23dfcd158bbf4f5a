package models

import "time"

// User roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents an account in the system.
type User struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	PasswordHash    string    `bson:"passwordHash" json:"-"`
	Role            string    `bson:"role" json:"role"`
	Phone           string    `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken        string    `bson:"fcmToken,omitempty" json:"-"`
	ProfileImageURL string    `bson:"profileImageUrl,omitempty" json:"profileImageUrl,omitempty"`
	TokenHash       string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RegisterUserRequest is the signup payload.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// AuthenticateUserRequest is the signin payload.
type AuthenticateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after a successful signup or signin.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateUserRequest carries self-service profile updates.
type UpdateUserRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	ProfileImageURL string `json:"profileImageUrl"`
}
