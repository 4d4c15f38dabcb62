package ports

import (
	"context"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

// PermissionRepository defines persistence for permissions.
type PermissionRepository interface {
	Create(ctx context.Context, permission *domain.Permission) (*domain.Permission, error)
	FindByID(ctx context.Context, id string) (*domain.Permission, error)
	FindByName(ctx context.Context, name string) (*domain.Permission, error)
	FindByNames(ctx context.Context, names []string) ([]domain.Permission, error)
	FindAll(ctx context.Context, params ListParams) ([]domain.Permission, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, permission *domain.Permission) (*domain.Permission, error)

	// Delete removes the permission after clearing its role join rows.
	Delete(ctx context.Context, id string) error
}
