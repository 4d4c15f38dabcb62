package domain

import "time"

// Audit actions recorded for authentication activity.
const (
	AuditLoginSucceeded  = "login_succeeded"
	AuditLoginFailed     = "login_failed"
	AuditTokenRefreshed  = "token_refreshed"
	AuditLoggedOut       = "logged_out"
	AuditBootstrapRepair = "bootstrap_repair"
)

// AuditEvent is a single entry in the authentication audit trail.
type AuditEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
