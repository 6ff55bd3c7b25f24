package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/BlufyTeam/contacts/internal/entity"
	"github.com/BlufyTeam/contacts/internal/mocks"
	"github.com/BlufyTeam/contacts/internal/service"
)

func TestBuildContactsWorkbook_RoundTrip(t *testing.T) {
	t.Parallel()

	contacts := []entity.Contact{
		{
			FullName:     "Jane Doe",
			Email:        "jane@example.com",
			Extension:    "104",
			Organization: &entity.Organization{Name: "Acme"},
		},
		{
			FullName: "John Roe",
			Email:    "john@example.com",
		},
	}

	workbook, err := service.BuildContactsWorkbook(contacts)
	require.NoError(t, err)

	rows, err := service.ParseContactsSheet(bytes.NewReader(workbook))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "Jane Doe", rows[0].FullName)
	require.Equal(t, "jane@example.com", rows[0].Email)
	require.Equal(t, "104", rows[0].Extension)
	require.Equal(t, "John Roe", rows[1].FullName)
}

func TestParseContactsSheet_NameHeaderFallback(t *testing.T) {
	t.Parallel()

	workbook := buildWorkbook(t, [][]any{
		{"name", "email"},
		{"Jane Doe", "jane@example.com"},
	})

	rows, err := service.ParseContactsSheet(bytes.NewReader(workbook))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Jane Doe", rows[0].FullName)
}

func TestParseContactsSheet_NotAWorkbook(t *testing.T) {
	t.Parallel()

	_, err := service.ParseContactsSheet(bytes.NewReader([]byte("not a workbook")))
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestService_ImportContacts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	ctx := sessionCtx(operatorSession(entity.PermContacts))
	orgID := uuid.Must(uuid.NewV4())

	workbook := buildWorkbook(t, [][]any{
		{"fullName", "email", "extension", "organizationId"},
		{"Jane Doe", "jane@example.com", "104", orgID.String()},
		{"Bad Row", "bad@example.com", "105", "not-a-uuid"},
		{"", "skipped@example.com", "", orgID.String()},
	})

	// Only the row with a valid organization id reaches storage; the bad one
	// is skipped without failing the import.
	repo.EXPECT().CreateContact(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c entity.Contact) error {
			require.Equal(t, "Jane Doe", c.FullName)
			require.Equal(t, orgID, c.OrganizationID)
			return nil
		})

	s := service.New(testConfig(), repo, nil, nil)

	result, err := s.ImportContacts(ctx, bytes.NewReader(workbook))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, 3, result.Count)
	require.Len(t, result.Rows, 3)
}

func TestService_ImportContacts_MissingPermission(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	ctx := sessionCtx(operatorSession())

	s := service.New(testConfig(), repo, nil, nil)

	_, err := s.ImportContacts(ctx, bytes.NewReader(nil))
	require.ErrorIs(t, err, entity.ErrForbidden)
}

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()

	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)

		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return buf.Bytes()
}
