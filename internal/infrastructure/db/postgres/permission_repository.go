package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

// PermissionRepository persists permissions in PostgreSQL.
type PermissionRepository struct {
	pool *pgxpool.Pool
}

func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepository {
	return &PermissionRepository{pool: pool}
}

func (r *PermissionRepository) Create(ctx context.Context, permission *domain.Permission) (*domain.Permission, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `INSERT INTO permissions (id, name) VALUES ($1, $2)`, id, permission.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrPermissionExists
		}
		return nil, fmt.Errorf("insert permission: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *PermissionRepository) FindByID(ctx context.Context, id string) (*domain.Permission, error) {
	return r.findOne(ctx, `SELECT id, name FROM permissions WHERE id = $1`, id)
}

func (r *PermissionRepository) FindByName(ctx context.Context, name string) (*domain.Permission, error) {
	return r.findOne(ctx, `SELECT id, name FROM permissions WHERE name = $1`, name)
}

func (r *PermissionRepository) findOne(ctx context.Context, query string, arg any) (*domain.Permission, error) {
	var perm domain.Permission
	err := r.pool.QueryRow(ctx, query, arg).Scan(&perm.ID, &perm.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, fmt.Errorf("find permission: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.name
		FROM roles r
		JOIN role_permissions rp ON rp.role_id = r.id
		WHERE rp.permission_id = $1
		ORDER BY r.name`,
		perm.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("load permission roles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		perm.Roles = append(perm.Roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load permission roles: %w", err)
	}
	return &perm, nil
}

func (r *PermissionRepository) FindByNames(ctx context.Context, names []string) ([]domain.Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM permissions WHERE name = ANY($1) ORDER BY name`, names)
	if err != nil {
		return nil, fmt.Errorf("find permissions by names: %w", err)
	}
	defer rows.Close()

	var perms []domain.Permission
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *PermissionRepository) FindAll(ctx context.Context, params ports.ListParams) ([]domain.Permission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name FROM permissions
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		OFFSET $2 LIMIT $3`,
		params.Search, params.Skip, params.Take,
	)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	var perms []domain.Permission
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *PermissionRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM permissions WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`,
		search,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count permissions: %w", err)
	}
	return total, nil
}

func (r *PermissionRepository) Update(ctx context.Context, permission *domain.Permission) (*domain.Permission, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE permissions SET name = $2 WHERE id = $1`, permission.ID, permission.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrPermissionExists
		}
		return nil, fmt.Errorf("update permission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrPermissionNotFound
	}
	return r.FindByID(ctx, permission.ID)
}

// Delete clears the permission's role join rows before removing the row.
func (r *PermissionRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE permission_id = $1`, id); err != nil {
			return fmt.Errorf("clear permission roles: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete permission: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrPermissionNotFound
		}
		return nil
	})
}

var _ ports.PermissionRepository = (*PermissionRepository)(nil)
