package invites

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestAcceptPending_ReturnsSiteNames(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"site_name"}).
		AddRow("Mercy General").
		AddRow("St. Luke's")
	mock.ExpectQuery(`(?s)UPDATE\s+site_invites\s+SET\s+accepted_at\s*=\s*now\(\)\s+WHERE\s+email\s*=\s*\$1\s+AND\s+accepted_at\s+IS\s+NULL\s+RETURNING\s+site_name`).
		WithArgs("dana@example.edu").
		WillReturnRows(rows)

	sites, err := repo.AcceptPending(context.Background(), "dana@example.edu")
	if err != nil {
		t.Fatalf("AcceptPending error: %v", err)
	}
	if len(sites) != 2 || sites[0] != "Mercy General" || sites[1] != "St. Luke's" {
		t.Fatalf("unexpected sites: %v", sites)
	}
}

func TestAcceptPending_NoPendingInvites(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+site_invites`).
		WithArgs("dana@example.edu").
		WillReturnRows(sqlmock.NewRows([]string{"site_name"}))

	sites, err := repo.AcceptPending(context.Background(), "dana@example.edu")
	if err != nil {
		t.Fatalf("AcceptPending error: %v", err)
	}
	if len(sites) != 0 {
		t.Fatalf("expected no sites, got %v", sites)
	}
}

func TestAcceptPending_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+site_invites`).
		WithArgs("dana@example.edu").
		WillReturnError(errors.New("db down"))

	if _, err := repo.AcceptPending(context.Background(), "dana@example.edu"); err == nil {
		t.Fatalf("expected error")
	}
}
