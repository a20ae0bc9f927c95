package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/cliniclink/cliniclink/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "username", "password_hash", "role",
		"onboarding_completed", "phone", "emergency_contact", "pronouns",
		"mfa_enabled", "approved", "institution_id", "program_id",
	})
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\s*\(.+\)\s*VALUES\s*\(\$1,.+\$8\)\s*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow("u-42")
	mock.ExpectQuery(q).
		WithArgs("Dana", "Okafor", "dana@example.edu", "dana.okafor", []byte("hash"), "student", "inst-1", "prog-1").
		WillReturnRows(rows)

	u := &models.User{
		FirstName: "Dana", LastName: "Okafor", Email: "dana@example.edu",
		Username: "dana.okafor", PasswordHash: []byte("hash"), Role: common.RoleStudent,
		InstitutionID: "inst-1", ProgramID: "prog-1",
	}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-42" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Role: common.RoleStudent})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := userRows().AddRow("u-1", "Dana", "Okafor", "dana@example.edu", "dana.okafor",
		[]byte("hash"), "student", true, "", "", "", false, true, "", "")
	mock.ExpectQuery(`(?s)SELECT\s+.+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s+OR\s+username\s*=\s*\$1`).
		WithArgs("dana@example.edu").
		WillReturnRows(rows)

	got, err := repo.GetByLogin(context.Background(), "dana@example.edu")
	if err != nil {
		t.Fatalf("GetByLogin error: %v", err)
	}
	if got.ID != "u-1" || got.Username != "dana.okafor" || got.Role != common.RoleStudent {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+.+FROM\s+users\s+WHERE\s+email`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByLogin(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := userRows().AddRow("u-1", "Dana", "Okafor", "dana@example.edu", "dana.okafor",
		[]byte("hash"), "student", false, "", "", "", true, true, "", "")
	mock.ExpectQuery(`(?s)SELECT\s+.+FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !got.MFAEnabled || got.OnboardingCompleted {
		t.Fatalf("unexpected flags: %+v", got)
	}
}

func TestCompleteOnboarding_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := userRows().AddRow("u-1", "Dana", "Okafor", "dana@example.edu", "dana.okafor",
		[]byte("hash"), "student", true, "+1 555 0100", "Sam Okafor +1 555 0101", "she/her", false, true, "", "")
	mock.ExpectQuery(`(?s)UPDATE\s+users\s+SET\s+onboarding_completed\s*=\s*TRUE,\s*phone\s*=\s*\$2.+WHERE\s+id\s*=\s*\$1\s+RETURNING`).
		WithArgs("u-1", "+1 555 0100", "Sam Okafor +1 555 0101", "she/her").
		WillReturnRows(rows)

	got, err := repo.CompleteOnboarding(context.Background(), "u-1", models.OnboardingProfile{
		Phone:            "+1 555 0100",
		EmergencyContact: "Sam Okafor +1 555 0101",
		Pronouns:         "she/her",
	})
	if err != nil {
		t.Fatalf("CompleteOnboarding error: %v", err)
	}
	if !got.OnboardingCompleted || got.Phone != "+1 555 0100" {
		t.Fatalf("profile not applied: %+v", got)
	}
}
