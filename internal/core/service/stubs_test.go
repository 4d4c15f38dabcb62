package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

// memStore is a shared in-memory backing store for the stub repositories
// used across the service tests.
type memStore struct {
	users map[string]*domain.User
	roles map[string]*domain.Role
	perms map[string]*domain.Permission
	seq   int
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]*domain.User),
		roles: make(map[string]*domain.Role),
		perms: make(map[string]*domain.Permission),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func cloneRole(r *domain.Role) *domain.Role {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Permissions = append([]domain.Permission(nil), r.Permissions...)
	clone.Users = append([]domain.User(nil), r.Users...)
	return &clone
}

func clonePerm(p *domain.Permission) *domain.Permission {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Roles = append([]domain.Role(nil), p.Roles...)
	return &clone
}

type stubUserRepo struct {
	store *memStore
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	for copy.ID == "" {
		if id := r.store.nextID("user"); r.store.users[id] == nil {
			copy.ID = id
		}
	}
	r.store.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context, params ports.ListParams) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		if params.Search != "" && !strings.Contains(u.Username, params.Search) {
			continue
		}
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context, search string) (int64, error) {
	var n int64
	for _, u := range r.store.users {
		if search != "" && !strings.Contains(u.Username, search) {
			continue
		}
		n++
	}
	return n, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	existing, ok := r.store.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copy := cloneUser(user)
	copy.Roles = existing.Roles
	copy.PasswordHash = existing.PasswordHash
	r.store.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.store.users, id)
	return nil
}

func (r *stubUserRepo) AddRoles(_ context.Context, userID string, roleIDs []string) error {
	u, ok := r.store.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, id := range roleIDs {
		role, ok := r.store.roles[id]
		if !ok {
			return domain.ErrRoleNotFound
		}
		held := false
		for _, have := range u.Roles {
			if have.ID == id {
				held = true
				break
			}
		}
		if !held {
			u.Roles = append(u.Roles, *cloneRole(role))
		}
	}
	return nil
}

type stubRoleRepo struct {
	store *memStore
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	for _, existing := range r.store.roles {
		if existing.Name == role.Name {
			return nil, domain.ErrRoleExists
		}
	}
	copy := cloneRole(role)
	for copy.ID == "" {
		if id := r.store.nextID("role"); r.store.roles[id] == nil {
			copy.ID = id
		}
	}
	r.store.roles[copy.ID] = copy
	return cloneRole(copy), nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.store.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return cloneRole(role), nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.store.roles {
		if role.Name == name {
			return cloneRole(role), nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindByNames(_ context.Context, names []string) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(names))
	for _, role := range r.store.roles {
		for _, name := range names {
			if role.Name == name {
				out = append(out, *cloneRole(role))
				break
			}
		}
	}
	return out, nil
}

func (r *stubRoleRepo) FindAll(_ context.Context, params ports.ListParams) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(r.store.roles))
	for _, role := range r.store.roles {
		if params.Search != "" && !strings.Contains(role.Name, params.Search) {
			continue
		}
		out = append(out, *cloneRole(role))
	}
	return out, nil
}

func (r *stubRoleRepo) Count(_ context.Context, search string) (int64, error) {
	var n int64
	for _, role := range r.store.roles {
		if search != "" && !strings.Contains(role.Name, search) {
			continue
		}
		n++
	}
	return n, nil
}

func (r *stubRoleRepo) Update(_ context.Context, role *domain.Role) (*domain.Role, error) {
	existing, ok := r.store.roles[role.ID]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	copy := cloneRole(role)
	copy.Permissions = existing.Permissions
	r.store.roles[copy.ID] = copy
	return cloneRole(copy), nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.store.roles, id)
	for _, u := range r.store.users {
		kept := u.Roles[:0]
		for _, role := range u.Roles {
			if role.ID != id {
				kept = append(kept, role)
			}
		}
		u.Roles = kept
	}
	return nil
}

func (r *stubRoleRepo) AddPermissions(_ context.Context, roleID string, permissionIDs []string) error {
	role, ok := r.store.roles[roleID]
	if !ok {
		return domain.ErrRoleNotFound
	}
	for _, id := range permissionIDs {
		perm, ok := r.store.perms[id]
		if !ok {
			return domain.ErrPermissionNotFound
		}
		held := false
		for _, have := range role.Permissions {
			if have.ID == id {
				held = true
				break
			}
		}
		if !held {
			role.Permissions = append(role.Permissions, *clonePerm(perm))
		}
	}
	return nil
}

type stubPermRepo struct {
	store *memStore
}

func (r *stubPermRepo) Create(_ context.Context, permission *domain.Permission) (*domain.Permission, error) {
	for _, existing := range r.store.perms {
		if existing.Name == permission.Name {
			return nil, domain.ErrPermissionExists
		}
	}
	copy := clonePerm(permission)
	for copy.ID == "" {
		if id := r.store.nextID("perm"); r.store.perms[id] == nil {
			copy.ID = id
		}
	}
	r.store.perms[copy.ID] = copy
	return clonePerm(copy), nil
}

func (r *stubPermRepo) FindByID(_ context.Context, id string) (*domain.Permission, error) {
	perm, ok := r.store.perms[id]
	if !ok {
		return nil, domain.ErrPermissionNotFound
	}
	return clonePerm(perm), nil
}

func (r *stubPermRepo) FindByName(_ context.Context, name string) (*domain.Permission, error) {
	for _, perm := range r.store.perms {
		if perm.Name == name {
			return clonePerm(perm), nil
		}
	}
	return nil, domain.ErrPermissionNotFound
}

func (r *stubPermRepo) FindByNames(_ context.Context, names []string) ([]domain.Permission, error) {
	out := make([]domain.Permission, 0, len(names))
	for _, perm := range r.store.perms {
		for _, name := range names {
			if perm.Name == name {
				out = append(out, *clonePerm(perm))
				break
			}
		}
	}
	return out, nil
}

func (r *stubPermRepo) FindAll(_ context.Context, params ports.ListParams) ([]domain.Permission, error) {
	out := make([]domain.Permission, 0, len(r.store.perms))
	for _, perm := range r.store.perms {
		if params.Search != "" && !strings.Contains(perm.Name, params.Search) {
			continue
		}
		out = append(out, *clonePerm(perm))
	}
	return out, nil
}

func (r *stubPermRepo) Count(_ context.Context, search string) (int64, error) {
	var n int64
	for _, perm := range r.store.perms {
		if search != "" && !strings.Contains(perm.Name, search) {
			continue
		}
		n++
	}
	return n, nil
}

func (r *stubPermRepo) Update(_ context.Context, permission *domain.Permission) (*domain.Permission, error) {
	if _, ok := r.store.perms[permission.ID]; !ok {
		return nil, domain.ErrPermissionNotFound
	}
	copy := clonePerm(permission)
	r.store.perms[copy.ID] = copy
	return clonePerm(copy), nil
}

func (r *stubPermRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.perms[id]; !ok {
		return domain.ErrPermissionNotFound
	}
	delete(r.store.perms, id)
	for _, role := range r.store.roles {
		kept := role.Permissions[:0]
		for _, perm := range role.Permissions {
			if perm.ID != id {
				kept = append(kept, perm)
			}
		}
		role.Permissions = kept
	}
	return nil
}

// stubAudit collects recorded events for assertions.
type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.events = append(a.events, event)
}

func (a *stubAudit) actions() []string {
	out := make([]string, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}

var (
	_ ports.UserRepository       = (*stubUserRepo)(nil)
	_ ports.RoleRepository       = (*stubRoleRepo)(nil)
	_ ports.PermissionRepository = (*stubPermRepo)(nil)
)
