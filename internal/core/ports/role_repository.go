package ports

import (
	"context"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

// RoleRepository defines persistence for roles and their relations.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	FindByNames(ctx context.Context, names []string) ([]domain.Role, error)
	FindAll(ctx context.Context, params ListParams) ([]domain.Role, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, role *domain.Role) (*domain.Role, error)

	// Delete removes the role after clearing its user and permission join
	// rows, all within one transaction. Users and permissions themselves
	// are left intact.
	Delete(ctx context.Context, id string) error

	// AddPermissions links the given permissions to the role as a set
	// union at the join-table level.
	AddPermissions(ctx context.Context, roleID string, permissionIDs []string) error
}
