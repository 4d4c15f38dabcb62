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

// RoleRepository persists roles and their relations in PostgreSQL.
type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `INSERT INTO roles (id, name) VALUES ($1, $2)`, id, role.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrRoleExists
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	return r.findOne(ctx, `SELECT id, name FROM roles WHERE id = $1`, id)
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, `SELECT id, name FROM roles WHERE name = $1`, name)
}

func (r *RoleRepository) findOne(ctx context.Context, query string, arg any) (*domain.Role, error) {
	var role domain.Role
	err := r.pool.QueryRow(ctx, query, arg).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	if err := r.loadRelations(ctx, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// loadRelations attaches the role's permissions and member users.
func (r *RoleRepository) loadRelations(ctx context.Context, role *domain.Role) error {
	permRows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.name`,
		role.ID,
	)
	if err != nil {
		return fmt.Errorf("load role permissions: %w", err)
	}
	defer permRows.Close()
	for permRows.Next() {
		var p domain.Permission
		if err := permRows.Scan(&p.ID, &p.Name); err != nil {
			return fmt.Errorf("scan permission: %w", err)
		}
		role.Permissions = append(role.Permissions, p)
	}
	if err := permRows.Err(); err != nil {
		return fmt.Errorf("load role permissions: %w", err)
	}

	userRows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username, u.email
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		WHERE ur.role_id = $1
		ORDER BY u.username`,
		role.ID,
	)
	if err != nil {
		return fmt.Errorf("load role users: %w", err)
	}
	defer userRows.Close()
	for userRows.Next() {
		var u domain.User
		if err := userRows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return fmt.Errorf("scan role user: %w", err)
		}
		role.Users = append(role.Users, u)
	}
	return userRows.Err()
}

func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]domain.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM roles WHERE name = ANY($1) ORDER BY name`, names)
	if err != nil {
		return nil, fmt.Errorf("find roles by names: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) FindAll(ctx context.Context, params ports.ListParams) ([]domain.Role, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name FROM roles
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		OFFSET $2 LIMIT $3`,
		params.Search, params.Skip, params.Take,
	)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM roles WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`,
		search,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count roles: %w", err)
	}
	return total, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE roles SET name = $2 WHERE id = $1`, role.ID, role.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrRoleExists
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrRoleNotFound
	}
	return r.FindByID(ctx, role.ID)
}

// Delete clears the role's join rows to users and permissions, then removes
// the role, all in one transaction. No orphaned join rows survive.
func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE role_id = $1`, id); err != nil {
			return fmt.Errorf("clear role users: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
			return fmt.Errorf("clear role permissions: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete role: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrRoleNotFound
		}
		return nil
	})
}

// AddPermissions performs a set-union insert at the join table.
func (r *RoleRepository) AddPermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO role_permissions (role_id, permission_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`,
		roleID, permissionIDs,
	)
	if err != nil {
		return fmt.Errorf("add permissions: %w", err)
	}
	return nil
}

var _ ports.RoleRepository = (*RoleRepository)(nil)
