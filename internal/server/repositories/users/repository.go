// Package users persists account records.
package users

import (
	"context"

	"github.com/imararent/imararent/internal/server/models"
)

// Repository stores account records. Create returns common.ErrEmailTaken
// when the email is already registered; lookups return common.ErrNotFound
// for unknown accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetStatus(ctx context.Context, id string, status models.Status) error
	SetAvatarKey(ctx context.Context, id string, key string) error
}
