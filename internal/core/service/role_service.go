package service

import (
	"context"
	"errors"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

// RoleService implements role management.
type RoleService struct {
	roles       ports.RoleRepository
	permissions ports.PermissionRepository
}

func NewRoleService(roles ports.RoleRepository, permissions ports.PermissionRepository) *RoleService {
	return &RoleService{roles: roles, permissions: permissions}
}

// Create adds a new role. The reserved admin name may exist at most once;
// any other duplicate name is a plain conflict.
func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	existing, err := s.roles.FindByName(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, err
	}
	if existing != nil {
		if name == domain.AdminRole {
			return nil, domain.ErrReservedRole
		}
		return nil, domain.ErrRoleExists
	}

	return s.roles.Create(ctx, &domain.Role{Name: name})
}

func (s *RoleService) List(ctx context.Context, params ports.ListParams) ([]domain.Role, int64, error) {
	roles, err := s.roles.FindAll(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.roles.Count(ctx, params.Search)
	if err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) Update(ctx context.Context, id, name string) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" && name != role.Name {
		existing, err := s.roles.FindByName(ctx, name)
		if err != nil && !errors.Is(err, domain.ErrRoleNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrRoleExists
		}
		role.Name = name
	}

	return s.roles.Update(ctx, role)
}

// Delete removes a role together with its join rows. The linked users and
// permissions themselves stay intact.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return err
	}
	return s.roles.Delete(ctx, id)
}

// SetPermissions links the named permissions to the role as a set union at
// the join table, so concurrent assignments cannot drop each other.
func (s *RoleService) SetPermissions(ctx context.Context, roleName string, permissionNames []string) (*domain.Role, error) {
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	perms, err := s.permissions.FindByNames(ctx, permissionNames)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(dedupe(permissionNames)) {
		return nil, domain.ErrPermissionNotFound
	}

	permIDs := make([]string, 0, len(perms))
	for _, p := range perms {
		permIDs = append(permIDs, p.ID)
	}
	if err := s.roles.AddPermissions(ctx, role.ID, permIDs); err != nil {
		return nil, err
	}

	return s.roles.FindByID(ctx, role.ID)
}

var _ ports.RoleService = (*RoleService)(nil)
