package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

// Bootstrap guarantees the baseline permission catalog, the admin role and
// the admin user exist and are linked. It runs on every process start, is
// idempotent, and tolerates any partially completed prior run.
//
// Failures are logged and reported, never fatal: the service still starts,
// and guarded routes fail closed until the admin path is repaired.
type Bootstrap struct {
	users         ports.UserRepository
	roles         ports.RoleRepository
	permissions   ports.PermissionRepository
	hasher        *PasswordHasher
	audit         AuditRecorder
	adminPassword string
	log           zerolog.Logger
}

func NewBootstrap(
	users ports.UserRepository,
	roles ports.RoleRepository,
	permissions ports.PermissionRepository,
	hasher *PasswordHasher,
	audit AuditRecorder,
	adminPassword string,
	log zerolog.Logger,
) *Bootstrap {
	if adminPassword == "" {
		adminPassword = domain.ReservedAdminUsername
	}
	return &Bootstrap{
		users:         users,
		roles:         roles,
		permissions:   permissions,
		hasher:        hasher,
		audit:         audit,
		adminPassword: adminPassword,
		log:           log,
	}
}

// Run executes every bootstrap step in order. Steps after a failed one
// still run; the first error is returned for the caller to log.
func (b *Bootstrap) Run(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	permIDs, err := b.ensurePermissions(ctx)
	keep(err)

	role, err := b.ensureAdminRole(ctx)
	keep(err)

	if role != nil && len(permIDs) > 0 {
		keep(b.linkPermissions(ctx, role.ID, permIDs))
	}

	user, err := b.ensureAdminUser(ctx)
	keep(err)

	if role != nil && user != nil {
		keep(b.linkRole(ctx, user, role))
	}

	return firstErr
}

// ensurePermissions creates every missing baseline permission and returns
// the IDs of all catalog permissions that exist afterwards.
func (b *Bootstrap) ensurePermissions(ctx context.Context) ([]string, error) {
	var firstErr error
	ids := make([]string, 0, len(domain.BaselinePermissions()))

	for _, name := range domain.BaselinePermissions() {
		perm, err := b.permissions.FindByName(ctx, name)
		if errors.Is(err, domain.ErrPermissionNotFound) {
			perm, err = b.permissions.Create(ctx, &domain.Permission{Name: name})
			if err == nil {
				b.repaired(domain.AuditEvent{Action: domain.AuditBootstrapRepair, Detail: "created permission " + name})
			}
		}
		if err != nil {
			b.log.Error().Err(err).Str("permission", name).Msg("bootstrap: ensure permission")
			if firstErr == nil {
				firstErr = fmt.Errorf("ensure permission %s: %w", name, err)
			}
			continue
		}
		ids = append(ids, perm.ID)
	}
	return ids, firstErr
}

func (b *Bootstrap) ensureAdminRole(ctx context.Context) (*domain.Role, error) {
	role, err := b.roles.FindByName(ctx, domain.AdminRole)
	if errors.Is(err, domain.ErrRoleNotFound) {
		role, err = b.roles.Create(ctx, &domain.Role{Name: domain.AdminRole})
		if err == nil {
			b.repaired(domain.AuditEvent{Action: domain.AuditBootstrapRepair, Detail: "created admin role"})
		}
	}
	if err != nil {
		b.log.Error().Err(err).Msg("bootstrap: ensure admin role")
		return nil, fmt.Errorf("ensure admin role: %w", err)
	}
	return role, nil
}

func (b *Bootstrap) linkPermissions(ctx context.Context, roleID string, permIDs []string) error {
	if err := b.roles.AddPermissions(ctx, roleID, permIDs); err != nil {
		b.log.Error().Err(err).Msg("bootstrap: link permissions to admin role")
		return fmt.Errorf("link permissions: %w", err)
	}
	return nil
}

func (b *Bootstrap) ensureAdminUser(ctx context.Context) (*domain.User, error) {
	user, err := b.users.FindByUsername(ctx, domain.ReservedAdminUsername)
	if errors.Is(err, domain.ErrUserNotFound) {
		hash, hashErr := b.hasher.Hash(b.adminPassword)
		if hashErr != nil {
			b.log.Error().Err(hashErr).Msg("bootstrap: hash admin password")
			return nil, fmt.Errorf("hash admin password: %w", hashErr)
		}
		user, err = b.users.Create(ctx, &domain.User{
			Username:     domain.ReservedAdminUsername,
			Email:        "admin@example.com",
			PasswordHash: hash,
			IsActive:     true,
			IsVerified:   true,
		})
		if err == nil {
			b.repaired(domain.AuditEvent{UserID: user.ID, Username: user.Username, Action: domain.AuditBootstrapRepair, Detail: "created admin user"})
		}
	}
	if err != nil {
		b.log.Error().Err(err).Msg("bootstrap: ensure admin user")
		return nil, fmt.Errorf("ensure admin user: %w", err)
	}
	return user, nil
}

func (b *Bootstrap) linkRole(ctx context.Context, user *domain.User, role *domain.Role) error {
	if user.HasRole(role.Name) {
		return nil
	}
	if err := b.users.AddRoles(ctx, user.ID, []string{role.ID}); err != nil {
		b.log.Error().Err(err).Msg("bootstrap: link admin role to admin user")
		return fmt.Errorf("link admin role: %w", err)
	}
	b.repaired(domain.AuditEvent{UserID: user.ID, Username: user.Username, Action: domain.AuditBootstrapRepair, Detail: "granted admin role"})
	return nil
}

func (b *Bootstrap) repaired(event domain.AuditEvent) {
	if b.audit != nil {
		b.audit.Record(event)
	}
}
