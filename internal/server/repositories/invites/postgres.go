// Package invites persists clinical-site invitations. The only mutation the
// auth flow needs is bulk acceptance at login time.
package invites

import (
	"context"
	"fmt"

	"github.com/cliniclink/cliniclink/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// AcceptPending accepts all pending invites for the email in one statement
// so a crash cannot leave half of them accepted.
func (r *PostgresRepository) AcceptPending(ctx context.Context, email string) ([]string, error) {
	query := `
		UPDATE site_invites SET accepted_at = now()
		WHERE email = $1 AND accepted_at IS NULL
		RETURNING site_name
	`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var sites []string
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return sites, nil
}
