package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an account row. PasswordHash is empty for OAuth accounts.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	AuthMethod   string    `json:"auth_method" db:"auth_method"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Submission is a saved questionnaire run: the profile the student submitted
// and the recommendation response they got back, both stored as JSONB.
type Submission struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Profile   json.RawMessage `json:"profile"`
	Response  json.RawMessage `json:"response,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
