package service

import (
	"context"
	"testing"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

func newRoleFixture() (*RoleService, *memStore) {
	store := newMemStore()
	svc := NewRoleService(&stubRoleRepo{store: store}, &stubPermRepo{store: store})
	return svc, store
}

func TestRoleService_Create_Duplicate(t *testing.T) {
	svc, _ := newRoleFixture()

	if _, err := svc.Create(context.Background(), "editor"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "editor"); err != domain.ErrRoleExists {
		t.Fatalf("expected ErrRoleExists, got %v", err)
	}
}

func TestRoleService_Create_ReservedAdminName(t *testing.T) {
	svc, _ := newRoleFixture()

	// The first admin role may be created (bootstrap does exactly that);
	// a second one is a reserved-name violation, not a plain conflict.
	if _, err := svc.Create(context.Background(), domain.AdminRole); err != nil {
		t.Fatalf("first admin create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.AdminRole); err != domain.ErrReservedRole {
		t.Fatalf("expected ErrReservedRole, got %v", err)
	}
}

func TestRoleService_Update_RenameConflict(t *testing.T) {
	svc, _ := newRoleFixture()

	editor, err := svc.Create(context.Background(), "editor")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "viewer"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), editor.ID, "viewer"); err != domain.ErrRoleExists {
		t.Fatalf("expected ErrRoleExists, got %v", err)
	}
	renamed, err := svc.Update(context.Background(), editor.ID, "author")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Name != "author" {
		t.Fatalf("rename not applied: %q", renamed.Name)
	}
}

func TestRoleService_SetPermissions_Union(t *testing.T) {
	svc, store := newRoleFixture()

	store.perms["perm-1"] = &domain.Permission{ID: "perm-1", Name: domain.PermReadUsers}
	store.perms["perm-2"] = &domain.Permission{ID: "perm-2", Name: domain.PermUpdateUser}
	store.roles["role-1"] = &domain.Role{
		ID:          "role-1",
		Name:        "editor",
		Permissions: []domain.Permission{{ID: "perm-1", Name: domain.PermReadUsers}},
	}

	role, err := svc.SetPermissions(context.Background(), "editor", []string{domain.PermReadUsers, domain.PermUpdateUser, domain.PermUpdateUser})
	if err != nil {
		t.Fatalf("SetPermissions returned error: %v", err)
	}
	if len(role.Permissions) != 2 {
		t.Fatalf("expected union of 2 permissions, got %d", len(role.Permissions))
	}
}

func TestRoleService_SetPermissions_UnknownPermission(t *testing.T) {
	svc, store := newRoleFixture()

	store.roles["role-1"] = &domain.Role{ID: "role-1", Name: "editor"}

	if _, err := svc.SetPermissions(context.Background(), "editor", []string{"can_do:everything"}); err != domain.ErrPermissionNotFound {
		t.Fatalf("expected ErrPermissionNotFound, got %v", err)
	}
}

func TestRoleService_SetPermissions_UnknownRole(t *testing.T) {
	svc, _ := newRoleFixture()

	if _, err := svc.SetPermissions(context.Background(), "ghost", []string{domain.PermReadUsers}); err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestRoleService_Delete(t *testing.T) {
	svc, store := newRoleFixture()

	role, err := svc.Create(context.Background(), "editor")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	store.users["user-1"] = &domain.User{
		ID:       "user-1",
		Username: "bob",
		Roles:    []domain.Role{{ID: role.ID, Name: "editor"}},
	}

	if err := svc.Delete(context.Background(), role.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(store.users["user-1"].Roles) != 0 {
		t.Fatalf("user still holds deleted role")
	}
	if err := svc.Delete(context.Background(), role.ID); err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}
