package repository

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
)

func (r *Repository) ListDocuments(ctx context.Context) ([]entity.Document, error) {
	sqlQuery := `
		SELECT id, name, description, file_url, file_type, created_at
		FROM it_documents
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	docs := make([]entity.Document, 0)

	for rows.Next() {
		var doc entity.Document

		err = rows.Scan(&doc.ID, &doc.Name, &doc.Description, &doc.FileURL, &doc.FileType, &doc.CreatedAt)
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func (r *Repository) DocumentByID(ctx context.Context, id uuid.UUID) (entity.Document, error) {
	sqlQuery := `
		SELECT id, name, description, file_url, file_type, created_at
		FROM it_documents
		WHERE id = $1`

	var doc entity.Document

	err := r.db.QueryRow(ctx, sqlQuery, id).Scan(
		&doc.ID,
		&doc.Name,
		&doc.Description,
		&doc.FileURL,
		&doc.FileType,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Document{}, entity.ErrNotFound
		}

		return entity.Document{}, err
	}

	return doc, nil
}

func (r *Repository) CreateDocument(ctx context.Context, doc entity.Document) error {
	sqlQuery := `
		INSERT INTO it_documents (id, name, description, file_url, file_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, sqlQuery,
		doc.ID,
		doc.Name,
		doc.Description,
		doc.FileURL,
		doc.FileType,
		doc.CreatedAt,
	)
	if err != nil {
		return translateInsertErr(err)
	}

	return nil
}

func (r *Repository) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM it_documents WHERE id = $1`, id)
	if err != nil {
		return translateDeleteErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
