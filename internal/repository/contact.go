package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
)

var contactColumns = []string{
	"c.id",
	"c.full_name",
	"c.email",
	"c.extension",
	"c.organization_id",
	"c.fullname_en",
	"c.gender",
	"c.title",
	"c.title_en",
	"c.personal_code",
	"c.bc",
	"c.bc_en",
	"c.edu",
	"c.major",
	"c.phone",
	"c.mobile",
	"c.hired_date",
	"c.father",
	"c.birth_shamsi",
	"c.birth_miladi",
	"c.birth_loc",
	"c.marriage",
	"c.children_num",
	"c.code_meli",
	"c.shenasname",
	"c.shenasname_serial",
	"c.insurance_num",
	"c.insurance_code",
	"c.insurance_title",
	"c.passport",
	"c.passport_expire",
	"c.sos",
	"c.personal_mail",
	"c.created_at",
	"o.id",
	"o.name",
	"o.created_at",
}

func scanContact(row pgx.Row) (entity.Contact, error) {
	var (
		contact entity.Contact
		org     entity.Organization
	)

	err := row.Scan(
		&contact.ID,
		&contact.FullName,
		&contact.Email,
		&contact.Extension,
		&contact.OrganizationID,
		&contact.FullnameEn,
		&contact.Gender,
		&contact.Title,
		&contact.TitleEn,
		&contact.PersonalCode,
		&contact.BC,
		&contact.BCEn,
		&contact.Edu,
		&contact.Major,
		&contact.Phone,
		&contact.Mobile,
		&contact.HiredDate,
		&contact.Father,
		&contact.BirthShamsi,
		&contact.BirthMiladi,
		&contact.BirthLoc,
		&contact.Marriage,
		&contact.ChildrenNum,
		&contact.CodeMeli,
		&contact.Shenasname,
		&contact.ShenasnameSerial,
		&contact.InsuranceNum,
		&contact.InsuranceCode,
		&contact.InsuranceTitle,
		&contact.Passport,
		&contact.PassportExpire,
		&contact.SOS,
		&contact.PersonalMail,
		&contact.CreatedAt,
		&org.ID,
		&org.Name,
		&org.CreatedAt,
	)
	if err != nil {
		return entity.Contact{}, err
	}

	contact.Organization = &org

	return contact, nil
}

func (r *Repository) ListContacts(ctx context.Context, filter entity.ContactsFilter) ([]entity.Contact, error) {
	stmt := sq.Select(contactColumns...).
		From("contacts c").
		Join("organizations o ON o.id = c.organization_id").
		PlaceholderFormat(sq.Dollar)

	stmt = applyContactsFilter(stmt, filter)

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	contacts := make([]entity.Contact, 0)

	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}

		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

func applyContactsFilter(stmt sq.SelectBuilder, filter entity.ContactsFilter) sq.SelectBuilder {
	if filter.OrganizationID != nil {
		stmt = stmt.Where(sq.Eq{"c.organization_id": *filter.OrganizationID})
	}

	sortBy := entity.ContactsSortByCreatedAt
	if filter.SortBy.IsValid() {
		sortBy = filter.SortBy
	}

	orderBy := entity.DESC
	if filter.OrderBy.IsValid() {
		orderBy = filter.OrderBy
	}

	return stmt.OrderBy(fmt.Sprintf("c.%s %s", sortBy, orderBy))
}

func (r *Repository) ContactByID(ctx context.Context, id uuid.UUID) (entity.Contact, error) {
	stmt := sq.Select(contactColumns...).
		From("contacts c").
		Join("organizations o ON o.id = c.organization_id").
		Where(sq.Eq{"c.id": id}).
		PlaceholderFormat(sq.Dollar)

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return entity.Contact{}, err
	}

	contact, err := scanContact(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Contact{}, entity.ErrNotFound
		}

		return entity.Contact{}, err
	}

	return contact, nil
}

func (r *Repository) CreateContact(ctx context.Context, c entity.Contact) error {
	sqlQuery := `
		INSERT INTO contacts (
			id, full_name, email, extension, organization_id,
			fullname_en, gender, title, title_en, personal_code, bc, bc_en,
			edu, major, phone, mobile, hired_date, father, birth_shamsi,
			birth_miladi, birth_loc, marriage, children_num, code_meli,
			shenasname, shenasname_serial, insurance_num, insurance_code,
			insurance_title, passport, passport_expire, sos, personal_mail,
			created_at
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32, $33, $34
		)`

	_, err := r.db.Exec(ctx, sqlQuery,
		c.ID,
		c.FullName,
		c.Email,
		c.Extension,
		c.OrganizationID,
		c.FullnameEn,
		c.Gender,
		c.Title,
		c.TitleEn,
		c.PersonalCode,
		c.BC,
		c.BCEn,
		c.Edu,
		c.Major,
		c.Phone,
		c.Mobile,
		c.HiredDate,
		c.Father,
		c.BirthShamsi,
		c.BirthMiladi,
		c.BirthLoc,
		c.Marriage,
		c.ChildrenNum,
		c.CodeMeli,
		c.Shenasname,
		c.ShenasnameSerial,
		c.InsuranceNum,
		c.InsuranceCode,
		c.InsuranceTitle,
		c.Passport,
		c.PassportExpire,
		c.SOS,
		c.PersonalMail,
		c.CreatedAt,
	)
	if err != nil {
		return translateInsertErr(err)
	}

	return nil
}

func (r *Repository) UpdateContact(ctx context.Context, c entity.Contact) error {
	sqlQuery := `
		UPDATE contacts
		SET full_name = $1, email = $2, extension = $3, organization_id = $4,
			fullname_en = $5, gender = $6, title = $7, title_en = $8,
			personal_code = $9, bc = $10, bc_en = $11, edu = $12, major = $13,
			phone = $14, mobile = $15, hired_date = $16, father = $17,
			birth_shamsi = $18, birth_miladi = $19, birth_loc = $20,
			marriage = $21, children_num = $22, code_meli = $23,
			shenasname = $24, shenasname_serial = $25, insurance_num = $26,
			insurance_code = $27, insurance_title = $28, passport = $29,
			passport_expire = $30, sos = $31, personal_mail = $32
		WHERE id = $33`

	tag, err := r.db.Exec(ctx, sqlQuery,
		c.FullName,
		c.Email,
		c.Extension,
		c.OrganizationID,
		c.FullnameEn,
		c.Gender,
		c.Title,
		c.TitleEn,
		c.PersonalCode,
		c.BC,
		c.BCEn,
		c.Edu,
		c.Major,
		c.Phone,
		c.Mobile,
		c.HiredDate,
		c.Father,
		c.BirthShamsi,
		c.BirthMiladi,
		c.BirthLoc,
		c.Marriage,
		c.ChildrenNum,
		c.CodeMeli,
		c.Shenasname,
		c.ShenasnameSerial,
		c.InsuranceNum,
		c.InsuranceCode,
		c.InsuranceTitle,
		c.Passport,
		c.PassportExpire,
		c.SOS,
		c.PersonalMail,
		c.ID,
	)
	if err != nil {
		return translateInsertErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return translateDeleteErr(err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}
