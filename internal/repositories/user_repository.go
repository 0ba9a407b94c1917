package repositories

import (
	"context"

	"stockroom/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	// Update overwrites the mutable fields of the stored user with user's.
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}
