package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

// AuditRepository persists authentication audit events.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	var userID any
	if event.UserID != "" {
		userID = event.UserID
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_events (id, user_id, username, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), userID, event.Username, event.Action, event.Detail, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

var _ ports.AuditRepository = (*AuditRepository)(nil)
