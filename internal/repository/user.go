package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
)

const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, u.extension,
		u.role_id, u.organization_id, u.created_at,
		r.id, r.name, r.description, r.created_at,
		o.id, o.name, o.created_at
	FROM users u
	LEFT JOIN roles r ON r.id = u.role_id
	LEFT JOIN organizations o ON o.id = u.organization_id`

func scanUser(row pgx.Row) (entity.User, error) {
	var (
		user entity.User

		roleID      *uuid.UUID
		roleName    *string
		roleDesc    *string
		roleCreated *time.Time

		orgID      *uuid.UUID
		orgName    *string
		orgCreated *time.Time
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Extension,
		&user.RoleID,
		&user.OrganizationID,
		&user.CreatedAt,
		&roleID,
		&roleName,
		&roleDesc,
		&roleCreated,
		&orgID,
		&orgName,
		&orgCreated,
	)
	if err != nil {
		return entity.User{}, err
	}

	if roleID != nil {
		user.Role = &entity.Role{
			ID:          *roleID,
			Name:        *roleName,
			Description: roleDesc,
			CreatedAt:   *roleCreated,
		}
	}

	if orgID != nil {
		user.Organization = &entity.Organization{
			ID:        *orgID,
			Name:      *orgName,
			CreatedAt: *orgCreated,
		}
	}

	return user, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.Query(ctx, userSelect+` ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	users := make([]entity.User, 0)

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.attachRolePermissions(ctx, users)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) UserByID(ctx context.Context, id uuid.UUID) (entity.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, entity.ErrNotFound
		}

		return entity.User{}, err
	}

	users := []entity.User{user}

	err = r.attachRolePermissions(ctx, users)
	if err != nil {
		return entity.User{}, err
	}

	return users[0], nil
}

func (r *Repository) UserByEmail(ctx context.Context, email string) (entity.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, userSelect+` WHERE u.email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, entity.ErrNotFound
		}

		return entity.User{}, err
	}

	users := []entity.User{user}

	err = r.attachRolePermissions(ctx, users)
	if err != nil {
		return entity.User{}, err
	}

	return users[0], nil
}

func (r *Repository) attachRolePermissions(ctx context.Context, users []entity.User) error {
	perms := make(map[uuid.UUID][]entity.Permission)

	for i := range users {
		if users[i].Role == nil {
			continue
		}

		cached, ok := perms[users[i].Role.ID]
		if !ok {
			loaded, err := r.rolePermissions(ctx, users[i].Role.ID)
			if err != nil {
				return err
			}

			perms[users[i].Role.ID] = loaded
			cached = loaded
		}

		users[i].Role.Permissions = cached
	}

	return nil
}

func (r *Repository) CreateUser(ctx context.Context, u entity.User) error {
	sqlQuery := `
		INSERT INTO users (id, name, email, password_hash, extension, role_id, organization_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, sqlQuery,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Extension,
		u.RoleID,
		u.OrganizationID,
		u.CreatedAt,
	)
	if err != nil {
		return translateInsertErr(err)
	}

	return nil
}

// UpdateUser replaces the user's fields. An empty PasswordHash keeps the
// stored one.
func (r *Repository) UpdateUser(ctx context.Context, u entity.User) error {
	sqlQuery := `
		UPDATE users
		SET name = $1, email = $2, extension = $3, role_id = $4, organization_id = $5,
			password_hash = CASE WHEN $6 = '' THEN password_hash ELSE $6 END
		WHERE id = $7`

	tag, err := r.db.Exec(ctx, sqlQuery,
		u.Name,
		u.Email,
		u.Extension,
		u.RoleID,
		u.OrganizationID,
		u.PasswordHash,
		u.ID,
	)
	if err != nil {
		return translateInsertErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateDeleteErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
