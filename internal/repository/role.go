package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
)

func (r *Repository) ListRoles(ctx context.Context) ([]entity.Role, error) {
	sqlQuery := `
		SELECT id, name, description, created_at
		FROM roles
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	roles := make([]entity.Role, 0)

	for rows.Next() {
		var role entity.Role

		err = rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
		if err != nil {
			return nil, err
		}

		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range roles {
		roles[i].Permissions, err = r.rolePermissions(ctx, roles[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return roles, nil
}

func (r *Repository) RoleByID(ctx context.Context, id uuid.UUID) (entity.Role, error) {
	sqlQuery := `
		SELECT id, name, description, created_at
		FROM roles
		WHERE id = $1`

	var role entity.Role

	err := r.db.QueryRow(ctx, sqlQuery, id).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Role{}, entity.ErrNotFound
		}

		return entity.Role{}, err
	}

	role.Permissions, err = r.rolePermissions(ctx, role.ID)
	if err != nil {
		return entity.Role{}, err
	}

	return role, nil
}

func (r *Repository) RoleByName(ctx context.Context, name string) (entity.Role, error) {
	sqlQuery := `
		SELECT id, name, description, created_at
		FROM roles
		WHERE name = $1`

	var role entity.Role

	err := r.db.QueryRow(ctx, sqlQuery, name).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Role{}, entity.ErrNotFound
		}

		return entity.Role{}, err
	}

	role.Permissions, err = r.rolePermissions(ctx, role.ID)
	if err != nil {
		return entity.Role{}, err
	}

	return role, nil
}

func (r *Repository) rolePermissions(ctx context.Context, roleID uuid.UUID) ([]entity.Permission, error) {
	sqlQuery := `
		SELECT p.id, p.name, p.created_at
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.name ASC`

	rows, err := r.db.Query(ctx, sqlQuery, roleID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	perms := make([]entity.Permission, 0)

	for rows.Next() {
		var p entity.Permission

		err = rows.Scan(&p.ID, &p.Name, &p.CreatedAt)
		if err != nil {
			return nil, err
		}

		perms = append(perms, p)
	}

	return perms, rows.Err()
}

func (r *Repository) CreateRole(ctx context.Context, role entity.Role, permissionIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = tx.Rollback(ctx) }()

	sqlQuery := `
		INSERT INTO roles (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err = tx.Exec(ctx, sqlQuery, role.ID, role.Name, role.Description, role.CreatedAt)
	if err != nil {
		return translateInsertErr(err)
	}

	err = insertRolePermissions(ctx, tx, role.ID, permissionIDs)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateRole replaces the role's fields; a non-nil permissionIDs also replaces
// the whole permission link set.
func (r *Repository) UpdateRole(ctx context.Context, role entity.Role, permissionIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = tx.Rollback(ctx) }()

	sqlQuery := `
		UPDATE roles
		SET name = $1, description = $2
		WHERE id = $3`

	tag, err := tx.Exec(ctx, sqlQuery, role.Name, role.Description, role.ID)
	if err != nil {
		return translateInsertErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	if permissionIDs != nil {
		_, err = tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, role.ID)
		if err != nil {
			return err
		}

		err = insertRolePermissions(ctx, tx, role.ID, permissionIDs)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func insertRolePermissions(ctx context.Context, tx pgx.Tx, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	for _, permID := range permissionIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
			roleID, permID,
		)
		if err != nil {
			return fmt.Errorf("link permission %s: %w", permID, translateInsertErr(err))
		}
	}

	return nil
}

func (r *Repository) DeleteRole(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return translateDeleteErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
