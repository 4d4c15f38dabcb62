package domain

// Claims is the authorization currency: the claim-set assembled at login
// or refresh time and carried inside both tokens. It is never persisted.
//
// Authorization decisions read only this structure; revocations therefore
// take effect at the next token refresh, bounded by the access-token TTL.
type Claims struct {
	UserID      string   `json:"sub"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// NewClaims derives the claim-set for a user.
func NewClaims(u *User) Claims {
	return Claims{
		UserID:      u.ID,
		Username:    u.Username,
		Roles:       u.RoleNames(),
		Permissions: u.PermissionNames(),
	}
}

// IsAdmin reports whether the claim-set includes the privileged role.
func (c Claims) IsAdmin() bool {
	for _, r := range c.Roles {
		if r == AdminRole {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the claim-set holds at least one of the
// given permission names. An empty argument list never matches.
func (c Claims) HasAnyPermission(names ...string) bool {
	for _, want := range names {
		for _, have := range c.Permissions {
			if have == want {
				return true
			}
		}
	}
	return false
}
