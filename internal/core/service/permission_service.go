package service

import (
	"context"
	"errors"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

// PermissionService implements permission management.
type PermissionService struct {
	permissions ports.PermissionRepository
}

func NewPermissionService(permissions ports.PermissionRepository) *PermissionService {
	return &PermissionService{permissions: permissions}
}

func (s *PermissionService) Create(ctx context.Context, name string) (*domain.Permission, error) {
	existing, err := s.permissions.FindByName(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrPermissionNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPermissionExists
	}

	return s.permissions.Create(ctx, &domain.Permission{Name: name})
}

func (s *PermissionService) List(ctx context.Context, params ports.ListParams) ([]domain.Permission, int64, error) {
	perms, err := s.permissions.FindAll(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.permissions.Count(ctx, params.Search)
	if err != nil {
		return nil, 0, err
	}
	return perms, total, nil
}

func (s *PermissionService) Get(ctx context.Context, id string) (*domain.Permission, error) {
	return s.permissions.FindByID(ctx, id)
}

func (s *PermissionService) Update(ctx context.Context, id, name string) (*domain.Permission, error) {
	perm, err := s.permissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" && name != perm.Name {
		existing, err := s.permissions.FindByName(ctx, name)
		if err != nil && !errors.Is(err, domain.ErrPermissionNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrPermissionExists
		}
		perm.Name = name
	}

	return s.permissions.Update(ctx, perm)
}

// Delete removes a permission after clearing its role links.
func (s *PermissionService) Delete(ctx context.Context, id string) error {
	if _, err := s.permissions.FindByID(ctx, id); err != nil {
		return err
	}
	return s.permissions.Delete(ctx, id)
}

var _ ports.PermissionService = (*PermissionService)(nil)
