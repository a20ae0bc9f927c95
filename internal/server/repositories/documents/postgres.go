// Package documents persists credential-document records. Rows are created
// when a direct upload is confirmed; the files themselves live in object
// storage under StorageKey.
package documents

import (
	"context"
	"fmt"

	"github.com/cliniclink/cliniclink/internal/dbx"
	"github.com/cliniclink/cliniclink/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, doc *models.CredentialDocument) (*models.CredentialDocument, error) {
	query := `
		INSERT INTO credential_documents (user_id, kind, storage_key, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if doc.Status == "" {
		doc.Status = models.DocumentPending
	}
	if err := r.db.QueryRowContext(ctx, query,
		doc.UserID, doc.Kind, doc.StorageKey, doc.Status).Scan(&doc.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.CredentialDocument, error) {
	query := `
		SELECT id, user_id, kind, storage_key, status, created_at
		FROM credential_documents
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var docs []*models.CredentialDocument
	for rows.Next() {
		doc := &models.CredentialDocument{}
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.Kind, &doc.StorageKey, &doc.Status, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return docs, nil
}
