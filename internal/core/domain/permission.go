package domain

// Permission is a named capability, by convention "action:resource".
type Permission struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Roles []Role `json:"roles,omitempty"`
}

// Baseline permission catalog. Bootstrap guarantees every name below exists
// and is linked to the admin role.
const (
	PermCreateUser        = "can_create:user"
	PermReadUsers         = "can_read:users"
	PermReadUser          = "can_read:user"
	PermUpdateUser        = "can_update:user"
	PermDeleteUser        = "can_delete:user"
	PermManageUserRoles   = "can_manage:user_roles"
	PermChangeOwnPassword = "can_change:own_password"

	PermCreateRole            = "can_create:role"
	PermReadRoles             = "can_read:roles"
	PermReadRole              = "can_read:role"
	PermUpdateRole            = "can_update:role"
	PermDeleteRole            = "can_delete:role"
	PermManageRolePermissions = "can_manage:role_permissions"

	PermCreatePermission = "can_create:permission"
	PermReadPermissions  = "can_read:permissions"
	PermReadPermission   = "can_read:permission"
	PermUpdatePermission = "can_update:permission"
	PermDeletePermission = "can_delete:permission"
)

// BaselinePermissions lists the full catalog created at bootstrap.
func BaselinePermissions() []string {
	return []string{
		PermCreateUser,
		PermReadUsers,
		PermReadUser,
		PermUpdateUser,
		PermDeleteUser,
		PermManageUserRoles,
		PermChangeOwnPassword,
		PermCreateRole,
		PermReadRoles,
		PermReadRole,
		PermUpdateRole,
		PermDeleteRole,
		PermManageRolePermissions,
		PermCreatePermission,
		PermReadPermissions,
		PermReadPermission,
		PermUpdatePermission,
		PermDeletePermission,
	}
}
