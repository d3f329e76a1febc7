package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveSubmission stores a questionnaire run for a user and returns its ID.
// response may be nil when the run has not produced recommendations yet.
func (db *DB) SaveSubmission(ctx context.Context, userID uuid.UUID, profile, response json.RawMessage) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO submissions (user_id, profile, response)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, profile, response,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save submission: %w", err)
	}
	return id, nil
}

// GetSubmission retrieves a submission by ID. Returns nil, nil when absent.
func (db *DB) GetSubmission(ctx context.Context, id uuid.UUID) (*Submission, error) {
	var sub Submission
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, profile, response, created_at
		 FROM submissions WHERE id = $1`,
		id,
	).Scan(&sub.ID, &sub.UserID, &sub.Profile, &sub.Response, &sub.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &sub, nil
}

// ListSubmissionsByUser retrieves a user's submissions, newest first.
func (db *DB) ListSubmissionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Submission, error) {
	if limit == 0 {
		limit = 20
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, profile, response, created_at
		 FROM submissions WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Profile, &sub.Response, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// DeleteSubmission removes a submission owned by the given user.
func (db *DB) DeleteSubmission(ctx context.Context, id, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM submissions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("submission not found: %s", id)
	}
	return nil
}
