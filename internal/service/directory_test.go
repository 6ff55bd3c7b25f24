package service_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BlufyTeam/contacts/internal/entity"
	"github.com/BlufyTeam/contacts/internal/mocks"
	"github.com/BlufyTeam/contacts/internal/service"
)

func sessionCtx(session entity.Session) context.Context {
	return entity.SetSessionToContext(context.Background(), session)
}

func operatorSession(perms ...string) entity.Session {
	return entity.Session{
		UserID:      uuid.Must(uuid.NewV4()),
		Role:        "OPERATOR",
		Permissions: perms,
	}
}

func adminSession() entity.Session {
	return entity.Session{
		UserID: uuid.Must(uuid.NewV4()),
		Role:   entity.RoleAdmin,
	}
}

func TestService_CreateContact(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	auditor := mocks.NewMockAuditor(ctrl)

	session := operatorSession(entity.PermContacts)
	ctx := sessionCtx(session)
	orgID := uuid.Must(uuid.NewV4())

	input := entity.Contact{
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		Extension:      "104",
		OrganizationID: orgID,
	}

	var createdID uuid.UUID

	repo.EXPECT().CreateContact(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c entity.Contact) error {
			require.False(t, c.ID.IsNil())
			require.False(t, c.CreatedAt.IsZero())
			createdID = c.ID
			return nil
		})
	repo.EXPECT().ContactByID(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (entity.Contact, error) {
			require.Equal(t, createdID, id)

			c := input
			c.ID = id
			c.Organization = &entity.Organization{ID: orgID, Name: "Acme"}
			return c, nil
		})
	auditor.EXPECT().SendEntityChanged(ctx, session.UserID, "contact", "create", gomock.Any())

	s := service.New(testConfig(), repo, nil, auditor)

	contact, err := s.CreateContact(ctx, input)
	require.NoError(t, err)
	require.Equal(t, createdID, contact.ID)
	require.NotNil(t, contact.Organization)
	require.Equal(t, "Acme", contact.Organization.Name)
}

func TestService_CreateContact_MissingPermission(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	ctx := sessionCtx(operatorSession(entity.PermUsers))

	s := service.New(testConfig(), repo, nil, nil)

	_, err := s.CreateContact(ctx, entity.Contact{
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		OrganizationID: uuid.Must(uuid.NewV4()),
	})
	require.ErrorIs(t, err, entity.ErrForbidden)
}

func TestService_CreateContact_NoSession(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	s := service.New(testConfig(), repo, nil, nil)

	_, err := s.CreateContact(context.Background(), entity.Contact{
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		OrganizationID: uuid.Must(uuid.NewV4()),
	})
	require.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestService_CreateContact_InvalidInput(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	ctx := sessionCtx(adminSession())

	s := service.New(testConfig(), repo, nil, nil)

	tests := []struct {
		name  string
		input entity.Contact
	}{
		{"Missing full name", entity.Contact{Email: "jane@example.com", OrganizationID: uuid.Must(uuid.NewV4())}},
		{"Bad email", entity.Contact{FullName: "Jane Doe", Email: "not-an-email", OrganizationID: uuid.Must(uuid.NewV4())}},
		{"Missing organization", entity.Contact{FullName: "Jane Doe", Email: "jane@example.com"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := s.CreateContact(ctx, test.input)
			require.ErrorIs(t, err, entity.ErrInvalidInput)
		})
	}
}

func TestService_CreateOrganization_AdminUnrestricted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	auditor := mocks.NewMockAuditor(ctrl)

	session := adminSession()
	ctx := sessionCtx(session)

	repo.EXPECT().CreateOrganization(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, org entity.Organization) error {
			require.Equal(t, "Acme", org.Name)
			require.False(t, org.ID.IsNil())
			return nil
		})
	auditor.EXPECT().SendEntityChanged(ctx, session.UserID, "organization", "create", gomock.Any())

	s := service.New(testConfig(), repo, nil, auditor)

	org, err := s.CreateOrganization(ctx, "  Acme  ")
	require.NoError(t, err)
	require.Equal(t, "Acme", org.Name)
}

func TestService_DeleteOrganization_InUse(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	ctx := sessionCtx(operatorSession(entity.PermOrganizations))
	id := uuid.Must(uuid.NewV4())

	repo.EXPECT().DeleteOrganization(ctx, id).Return(entity.ErrInUse)

	s := service.New(testConfig(), repo, nil, nil)

	err := s.DeleteOrganization(ctx, id)
	require.ErrorIs(t, err, entity.ErrInUse)
}
