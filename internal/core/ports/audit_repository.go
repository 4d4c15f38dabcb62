package ports

import (
	"context"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}
