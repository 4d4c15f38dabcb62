package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

const uniqueViolation = "23505"

// UserRepository persists principals in PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, full_name, password_hash, is_active, is_verified,
	avatar_url, phone_number, auth_provider, locale, timezone, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.IsActive, &u.IsVerified,
		&u.AvatarURL, &u.PhoneNumber, &u.AuthProvider, &u.Locale, &u.Timezone, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, full_name, password_hash, is_active, is_verified,
			avatar_url, phone_number, auth_provider, locale, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`,
		id, user.Username, user.Email, user.FullName, user.PasswordHash, user.IsActive, user.IsVerified,
		user.AvatarURL, user.PhoneNumber, user.AuthProvider, user.Locale, user.Timezone, now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// loadRoles attaches the user's roles and each role's permissions in a
// single join query.
func (r *UserRepository) loadRoles(ctx context.Context, user *domain.User) error {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.name, p.id, p.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		WHERE ur.user_id = $1
		ORDER BY r.name, p.name`,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Role)
	order := make([]string, 0)
	for rows.Next() {
		var roleID, roleName string
		var permID, permName *string
		if err := rows.Scan(&roleID, &roleName, &permID, &permName); err != nil {
			return fmt.Errorf("scan role: %w", err)
		}
		role, ok := byID[roleID]
		if !ok {
			role = &domain.Role{ID: roleID, Name: roleName}
			byID[roleID] = role
			order = append(order, roleID)
		}
		if permID != nil {
			role.Permissions = append(role.Permissions, domain.Permission{ID: *permID, Name: *permName})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load roles: %w", err)
	}

	user.Roles = make([]domain.Role, 0, len(order))
	for _, id := range order {
		user.Roles = append(user.Roles, *byID[id])
	}
	return nil
}

func (r *UserRepository) FindAll(ctx context.Context, params ports.ListParams) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY created_at, id
		OFFSET $2 LIMIT $3`,
		params.Search, params.Skip, params.Take,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM users
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')`,
		search,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $2, full_name = $3, is_active = $4, is_verified = $5, avatar_url = $6,
			phone_number = $7, auth_provider = $8, locale = $9, timezone = $10, updated_at = $11
		WHERE id = $1`,
		user.ID, user.Email, user.FullName, user.IsActive, user.IsVerified, user.AvatarURL,
		user.PhoneNumber, user.AuthProvider, user.Locale, user.Timezone, time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, user.ID)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		id, passwordHash, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user and its role join rows in one transaction.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("clear user roles: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

// AddRoles performs a set-union insert at the join table. ON CONFLICT DO
// NOTHING makes concurrent assignments additive instead of lossy.
func (r *UserRepository) AddRoles(ctx context.Context, userID string, roleIDs []string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`,
		userID, roleIDs,
	)
	if err != nil {
		return fmt.Errorf("add roles: %w", err)
	}
	return nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
