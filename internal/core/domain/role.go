package domain

// AdminRole is the reserved privileged role name. A user holding this role
// bypasses all permission checks, and at most one role with this name may
// exist at any time.
const AdminRole = "admin"

// Role is a named authority bucket linking users to permissions.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Users       []User       `json:"users,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}
