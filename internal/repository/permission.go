package repository

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
)

func (r *Repository) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	sqlQuery := `
		SELECT id, name, created_at
		FROM permissions
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, sqlQuery)
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

func (r *Repository) PermissionByID(ctx context.Context, id uuid.UUID) (entity.Permission, error) {
	sqlQuery := `
		SELECT id, name, created_at
		FROM permissions
		WHERE id = $1`

	var p entity.Permission

	err := r.db.QueryRow(ctx, sqlQuery, id).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Permission{}, entity.ErrNotFound
		}

		return entity.Permission{}, err
	}

	return p, nil
}

func (r *Repository) CreatePermission(ctx context.Context, p entity.Permission) error {
	sqlQuery := `
		INSERT INTO permissions (id, name, created_at)
		VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, sqlQuery, p.ID, p.Name, p.CreatedAt)
	if err != nil {
		return translateInsertErr(err)
	}

	return nil
}

func (r *Repository) UpdatePermission(ctx context.Context, p entity.Permission) error {
	sqlQuery := `
		UPDATE permissions
		SET name = $1
		WHERE id = $2`

	tag, err := r.db.Exec(ctx, sqlQuery, p.Name, p.ID)
	if err != nil {
		return translateInsertErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) DeletePermission(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return translateDeleteErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
