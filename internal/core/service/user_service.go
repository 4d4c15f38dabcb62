package service

import (
	"context"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

// UserService implements principal management.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher *PasswordHasher
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, hasher *PasswordHasher) *UserService {
	return &UserService{users: users, roles: roles, hasher: hasher}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hash,
		IsActive:     true,
	}
	return s.users.Create(ctx, user)
}

func (s *UserService) List(ctx context.Context, params ports.ListParams) ([]domain.User, int64, error) {
	users, err := s.users.FindAll(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.Count(ctx, params.Search)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&user.Email, input.Email)
	applyString(&user.FullName, input.FullName)
	applyString(&user.AvatarURL, input.AvatarURL)
	applyString(&user.PhoneNumber, input.PhoneNumber)
	applyString(&user.AuthProvider, input.AuthProvider)
	applyString(&user.Locale, input.Locale)
	applyString(&user.Timezone, input.Timezone)
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsVerified != nil {
		user.IsVerified = *input.IsVerified
	}

	return s.users.Update(ctx, user)
}

// Delete removes a user. Users holding the admin role are protected so the
// invariant of a working admin path survives every delete.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.HasRole(domain.AdminRole) {
		return domain.ErrProtectedUser
	}
	return s.users.Delete(ctx, id)
}

// SetRoles links the named roles to the user as a set union. Every name
// must resolve to an existing role.
func (s *UserService) SetRoles(ctx context.Context, id string, roleNames []string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roles, err := s.roles.FindByNames(ctx, roleNames)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(dedupe(roleNames)) {
		return nil, domain.ErrRoleNotFound
	}

	roleIDs := make([]string, 0, len(roles))
	for _, r := range roles {
		roleIDs = append(roleIDs, r.ID)
	}
	if err := s.users.AddRoles(ctx, user.ID, roleIDs); err != nil {
		return nil, err
	}

	return s.users.FindByID(ctx, id)
}

// ChangePassword re-verifies the previous password before writing a new
// hash. The new secret is hashed exactly once.
func (s *UserService) ChangePassword(ctx context.Context, id, previousPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(previousPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, hash)
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

var _ ports.UserService = (*UserService)(nil)
