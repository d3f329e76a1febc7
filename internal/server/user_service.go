// Package server provides the HTTP REST API for the counselling service.
package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aura/counsel/internal/config"
	"github.com/aura/counsel/internal/db"
	"github.com/aura/counsel/internal/types"
)

// DBClient is the subset of database operations the user service needs.
// Satisfied by *db.DB; tests substitute a fake.
type DBClient interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, name, email, passwordHash, authMethod string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// UserService provides business logic for user authentication operations
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(db DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// convertDBUserToTypesUser converts db.User to types.User, excluding password hash
func convertDBUserToTypesUser(dbUser *db.User) *types.User {
	if dbUser == nil {
		return nil
	}
	return &types.User{
		ID:         dbUser.ID,
		Name:       dbUser.Name,
		Email:      dbUser.Email,
		AuthMethod: dbUser.AuthMethod,
		CreatedAt:  dbUser.CreatedAt,
		UpdatedAt:  dbUser.UpdatedAt,
	}
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *types.SignupRequest) (*types.User, error) {
	// Check if email already exists
	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	if len(req.Password) < 6 {
		return nil, &ErrValidation{Field: "password", Message: "must be at least 6 characters"}
	}

	// Hash password
	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateUser(ctx, req.Name, req.Email, passwordHash, types.AuthMethodLocal)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Retrieve created user
	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	// Convert and return (password hash excluded)
	return convertDBUserToTypesUser(dbUser), nil
}

// Login authenticates a password user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	// Get user by email
	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: Always return generic error if user not found or password wrong
	if dbUser == nil {
		return nil, &ErrInvalidCredentials{}
	}

	// An OAuth account has no password hash to verify against.
	if dbUser.AuthMethod != types.AuthMethodLocal {
		return nil, &ErrAuthMethodMismatch{
			Message: "this account uses Google sign-in, please log in with Google",
		}
	}

	// Verify password
	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	// Convert and return (password hash excluded)
	return convertDBUserToTypesUser(dbUser), nil
}

// OAuth handles the Google sign-in pass-through: logs the user in when the
// account already exists with the google method, creates it when absent, and
// rejects when the email belongs to a password account.
func (s *UserService) OAuth(ctx context.Context, req *types.OAuthRequest) (*types.User, bool, error) {
	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user by email: %w", err)
	}

	if dbUser != nil {
		if dbUser.AuthMethod != types.AuthMethodGoogle {
			return nil, false, &ErrAuthMethodMismatch{
				Message: "this account was created with a password, please log in with your password",
			}
		}
		return convertDBUserToTypesUser(dbUser), false, nil
	}

	// Pass-through signup: no password is ever stored for OAuth accounts.
	userID, err := s.db.CreateUser(ctx, req.Name, req.Email, "", types.AuthMethodGoogle)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if created == nil {
		return nil, false, fmt.Errorf("created user not found: %s", userID)
	}

	return convertDBUserToTypesUser(created), true, nil
}

// UpdatePassword updates a local user's password
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	// Get user by ID
	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if dbUser.AuthMethod != types.AuthMethodLocal {
		return &ErrAuthMethodMismatch{
			Message: "this account uses Google sign-in and has no password",
		}
	}

	// Verify current password
	if !s.passwordConfig.VerifyPassword(currentPassword, dbUser.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	if len(newPassword) < 6 {
		return &ErrValidation{Field: "new_password", Message: "must be at least 6 characters"}
	}

	// Hash new password
	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	// Update password in database
	err = s.db.UpdatePassword(ctx, userID, newPasswordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
