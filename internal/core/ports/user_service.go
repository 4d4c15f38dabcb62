package ports

import (
	"context"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

// CreateUserInput carries the fields accepted on user creation.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// UpdateUserInput carries optional profile mutations; nil fields are left
// unchanged.
type UpdateUserInput struct {
	Email        *string
	FullName     *string
	IsActive     *bool
	IsVerified   *bool
	AvatarURL    *string
	PhoneNumber  *string
	AuthProvider *string
	Locale       *string
	Timezone     *string
}

// UserService implements principal management.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context, params ListParams) ([]domain.User, int64, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	SetRoles(ctx context.Context, id string, roleNames []string) (*domain.User, error)
	ChangePassword(ctx context.Context, id, previousPassword, newPassword string) error
}
