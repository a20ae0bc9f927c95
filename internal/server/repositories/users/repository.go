package users

import (
	"context"

	"github.com/cliniclink/cliniclink/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	CompleteOnboarding(ctx context.Context, id string, profile models.OnboardingProfile) (*models.User, error)
}
