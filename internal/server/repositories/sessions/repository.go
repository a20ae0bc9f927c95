package sessions

import (
	"context"
	"time"

	"github.com/cliniclink/cliniclink/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, validity time.Duration) (*models.Session, error)
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}
