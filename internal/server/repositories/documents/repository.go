package documents

import (
	"context"

	"github.com/cliniclink/cliniclink/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, doc *models.CredentialDocument) (*models.CredentialDocument, error)
	ListByUser(ctx context.Context, userID string) ([]*models.CredentialDocument, error)
}
