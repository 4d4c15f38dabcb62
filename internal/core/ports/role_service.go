package ports

import (
	"context"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

// RoleService implements role management.
type RoleService interface {
	Create(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context, params ListParams) ([]domain.Role, int64, error)
	Get(ctx context.Context, id string) (*domain.Role, error)
	Update(ctx context.Context, id, name string) (*domain.Role, error)
	Delete(ctx context.Context, id string) error
	SetPermissions(ctx context.Context, roleName string, permissionNames []string) (*domain.Role, error)
}

// PermissionService implements permission management.
type PermissionService interface {
	Create(ctx context.Context, name string) (*domain.Permission, error)
	List(ctx context.Context, params ListParams) ([]domain.Permission, int64, error)
	Get(ctx context.Context, id string) (*domain.Permission, error)
	Update(ctx context.Context, id, name string) (*domain.Permission, error)
	Delete(ctx context.Context, id string) error
}
