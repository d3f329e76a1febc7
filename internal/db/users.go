package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateUser inserts a new account and returns its ID. passwordHash is empty
// for OAuth signups; authMethod records which flow created the account.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash, authMethod string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, auth_method)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, email, passwordHash, authMethod,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil, nil when absent.
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	var user User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, auth_method, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.AuthMethod, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email. Returns nil, nil when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, auth_method, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.AuthMethod, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// CheckEmailExists reports whether an account with the email already exists.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UpdatePassword replaces a user's password hash.
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// DeleteUser removes an account and its submissions (via cascade).
func (db *DB) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}
