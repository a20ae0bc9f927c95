// Package sessions provides a PostgreSQL-backed repository for the server
// side of bearer sessions. A session row existing is what keeps the matching
// access token valid; deleting it revokes the token.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/cliniclink/cliniclink/internal/dbx"
	"github.com/cliniclink/cliniclink/internal/server/models"
)

// PostgresRepository implements the session store over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new session for userID with an expiry time of now+validity.
func (r *PostgresRepository) Create(ctx context.Context, userID string, validity time.Duration) (*models.Session, error) {
	query := `
		INSERT INTO sessions (user_id, expires_at)
		VALUES ($1, $2)
		RETURNING id
	`
	session := &models.Session{UserID: userID, Expires: time.Now().Add(validity)}
	if err := r.db.QueryRowContext(ctx, query, userID, session.Expires).Scan(&session.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return session, nil
}

// Find returns the session row for the given ID.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, user_id, expires_at
		FROM sessions
		WHERE id = $1
	`
	session := &models.Session{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&session.ID, &session.UserID, &session.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return session, nil
}

// Delete removes a session by ID, revoking the matching token.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM sessions
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
