package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/BlufyTeam/contacts/internal/entity"
)

const contactsSheet = "Contacts"

// BuildContactsWorkbook projects contacts to a single-sheet xlsx workbook:
// fullName, email, extension, organization name, in the given order.
func BuildContactsWorkbook(contacts []entity.Contact) ([]byte, error) {
	f := excelize.NewFile()

	defer func() { _ = f.Close() }()

	err := f.SetSheetName("Sheet1", contactsSheet)
	if err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"fullName", "email", "extension", "organization"}

	err = f.SetSheetRow(contactsSheet, "A1", &header)
	if err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, c := range contacts {
		orgName := ""
		if c.Organization != nil {
			orgName = c.Organization.Name
		}

		row := []any{c.FullName, c.Email, c.Extension, orgName}

		cell, err := excelize.CoordinatesToCellName(1, i+2) //nolint:gomnd // header occupies row 1
		if err != nil {
			return nil, err
		}

		err = f.SetSheetRow(contactsSheet, cell, &row)
		if err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

type ContactImportRow struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Extension      string `json:"extension"`
	OrganizationID string `json:"organizationId"`
}

// ParseContactsSheet reads the first sheet of an xlsx workbook. Recognized
// header columns: fullName (or name), email, extension, organizationId; other
// columns are ignored.
func ParseContactsSheet(r io.Reader) ([]ContactImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}

	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets found", entity.ErrInvalidInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	if len(rows) == 0 {
		return []ContactImportRow{}, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[idx])
	}

	parsed := make([]ContactImportRow, 0, len(rows)-1)

	for _, row := range rows[1:] {
		imported := ContactImportRow{
			FullName:       cell(row, "fullname"),
			Email:          cell(row, "email"),
			Extension:      cell(row, "extension"),
			OrganizationID: cell(row, "organizationid"),
		}

		if imported.FullName == "" {
			imported.FullName = cell(row, "name")
		}

		parsed = append(parsed, imported)
	}

	return parsed, nil
}

// ExportContacts serializes all contacts, in storage order, to an xlsx binary.
func (s *Service) ExportContacts(ctx context.Context) ([]byte, error) {
	contacts, err := s.repo.ListContacts(ctx, entity.ContactsFilter{})
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return BuildContactsWorkbook(contacts)
}

type ImportResult struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Rows    []ContactImportRow `json:"data"`
}

// ImportContacts parses an uploaded workbook and inserts its rows as contacts.
// Rows commit independently: one bad row is logged and skipped without rolling
// back the others. Rows without a fullName are skipped, matching export files
// re-imported with blank lines. Never deduplicates.
func (s *Service) ImportContacts(ctx context.Context, r io.Reader) (ImportResult, error) {
	_, err := s.requireModule(ctx, entity.PermContacts)
	if err != nil {
		return ImportResult{}, err
	}

	rows, err := ParseContactsSheet(r)
	if err != nil {
		return ImportResult{}, err
	}

	for _, row := range rows {
		if row.FullName == "" {
			continue
		}

		err = s.importContact(ctx, row)
		if err != nil {
			slog.WarnContext(ctx, "skipping contact row", "fullName", row.FullName, "error", err)
		}
	}

	return ImportResult{
		Success: true,
		Count:   len(rows),
		Rows:    rows,
	}, nil
}
