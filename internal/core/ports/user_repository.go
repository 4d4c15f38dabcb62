package ports

import (
	"context"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

// ListParams controls pagination and filtering for list queries.
type ListParams struct {
	Skip   int
	Take   int
	Search string
}

// UserRepository defines persistence for principals. Lookups return users
// with their roles and the roles' permissions attached.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context, params ListParams) ([]domain.User, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error

	// AddRoles links the given roles to the user as a set union. Roles the
	// user already holds are left untouched; concurrent calls must not drop
	// each other's links.
	AddRoles(ctx context.Context, userID string, roleIDs []string) error
}
