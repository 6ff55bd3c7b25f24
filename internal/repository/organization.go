package repository

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
)

func (r *Repository) ListOrganizations(ctx context.Context) ([]entity.Organization, error) {
	sqlQuery := `
		SELECT id, name, created_at
		FROM organizations
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	orgs := make([]entity.Organization, 0)

	for rows.Next() {
		var org entity.Organization

		err = rows.Scan(&org.ID, &org.Name, &org.CreatedAt)
		if err != nil {
			return nil, err
		}

		orgs = append(orgs, org)
	}

	return orgs, rows.Err()
}

func (r *Repository) OrganizationByID(ctx context.Context, id uuid.UUID) (entity.Organization, error) {
	sqlQuery := `
		SELECT id, name, created_at
		FROM organizations
		WHERE id = $1`

	var org entity.Organization

	err := r.db.QueryRow(ctx, sqlQuery, id).Scan(&org.ID, &org.Name, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Organization{}, entity.ErrNotFound
		}

		return entity.Organization{}, err
	}

	return org, nil
}

func (r *Repository) CreateOrganization(ctx context.Context, org entity.Organization) error {
	sqlQuery := `
		INSERT INTO organizations (id, name, created_at)
		VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, sqlQuery, org.ID, org.Name, org.CreatedAt)
	if err != nil {
		return translateInsertErr(err)
	}

	return nil
}

func (r *Repository) UpdateOrganization(ctx context.Context, org entity.Organization) error {
	sqlQuery := `
		UPDATE organizations
		SET name = $1
		WHERE id = $2`

	tag, err := r.db.Exec(ctx, sqlQuery, org.Name, org.ID)
	if err != nil {
		return translateInsertErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return translateDeleteErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
