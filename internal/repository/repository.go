package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BlufyTeam/contacts/internal/entity"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}

// translateInsertErr maps store-level constraint failures on insert/update:
// duplicate keys become ErrAlreadyExists, a dangling reference (e.g. creating
// a contact against a deleted organization) becomes ErrNotFound.
func translateInsertErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return entity.ErrAlreadyExists
		case pgForeignKeyViolation:
			return entity.ErrNotFound
		}
	}

	return err
}

// translateDeleteErr maps a foreign-key violation on delete to ErrInUse: the
// row is still referenced and must not be removed silently.
func translateDeleteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return entity.ErrInUse
	}

	return err
}
