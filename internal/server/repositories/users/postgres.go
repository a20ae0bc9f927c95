package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/cliniclink/cliniclink/internal/dbx"
	"github.com/cliniclink/cliniclink/internal/server/models"
)

const userColumns = `id, first_name, last_name, email, username, password_hash, role,
		onboarding_completed, phone, emergency_contact, pronouns, mfa_enabled, approved,
		institution_id, program_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Username,
		&user.PasswordHash, &user.Role, &user.OnboardingCompleted, &user.Phone,
		&user.EmergencyContact, &user.Pronouns, &user.MFAEnabled,
		&user.Approved, &user.InstitutionID, &user.ProgramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (first_name, last_name, email, username, password_hash, role, institution_id, program_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.Username,
		user.PasswordHash, user.Role, user.InstitutionID, user.ProgramID).Scan(&user.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT ` + userColumns + `
		 FROM users
		 WHERE email = $1 OR username = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, login))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + `
		 FROM users
		 WHERE id = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) CompleteOnboarding(ctx context.Context, id string, profile models.OnboardingProfile) (*models.User, error) {
	query := `UPDATE users SET onboarding_completed = TRUE, phone = $2, emergency_contact = $3, pronouns = $4
		 WHERE id = $1
		 RETURNING ` + userColumns + `
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id, profile.Phone, profile.EmergencyContact, profile.Pronouns))
}
