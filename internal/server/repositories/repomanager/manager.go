package repomanager

import (
	"context"
	"database/sql"

	"github.com/cliniclink/cliniclink/internal/dbx"
	"github.com/cliniclink/cliniclink/internal/server/repositories/documents"
	"github.com/cliniclink/cliniclink/internal/server/repositories/invites"
	"github.com/cliniclink/cliniclink/internal/server/repositories/sessions"
	"github.com/cliniclink/cliniclink/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Invites(db dbx.DBTX) invites.Repository
	Documents(db dbx.DBTX) documents.Repository
}
