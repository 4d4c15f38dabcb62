package service

import (
	"context"
	"testing"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

func newPermissionFixture() (*PermissionService, *memStore) {
	store := newMemStore()
	return NewPermissionService(&stubPermRepo{store: store}), store
}

func TestPermissionService_Create_Duplicate(t *testing.T) {
	svc, _ := newPermissionFixture()

	if _, err := svc.Create(context.Background(), "can_read:reports"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "can_read:reports"); err != domain.ErrPermissionExists {
		t.Fatalf("expected ErrPermissionExists, got %v", err)
	}
}

func TestPermissionService_Update_RenameConflict(t *testing.T) {
	svc, _ := newPermissionFixture()

	read, err := svc.Create(context.Background(), "can_read:reports")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "can_write:reports"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), read.ID, "can_write:reports"); err != domain.ErrPermissionExists {
		t.Fatalf("expected ErrPermissionExists, got %v", err)
	}
}

func TestPermissionService_Delete_ClearsRoleLinks(t *testing.T) {
	svc, store := newPermissionFixture()

	perm, err := svc.Create(context.Background(), "can_read:reports")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	store.roles["role-1"] = &domain.Role{
		ID:          "role-1",
		Name:        "editor",
		Permissions: []domain.Permission{{ID: perm.ID, Name: perm.Name}},
	}

	if err := svc.Delete(context.Background(), perm.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(store.roles["role-1"].Permissions) != 0 {
		t.Fatalf("role still holds deleted permission")
	}
	if err := svc.Delete(context.Background(), perm.ID); err != domain.ErrPermissionNotFound {
		t.Fatalf("expected ErrPermissionNotFound, got %v", err)
	}
}
