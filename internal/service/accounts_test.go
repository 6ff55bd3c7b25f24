package service_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/BlufyTeam/contacts/internal/entity"
	"github.com/BlufyTeam/contacts/internal/mocks"
	"github.com/BlufyTeam/contacts/internal/service"
)

func TestService_CreateUser(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	auditor := mocks.NewMockAuditor(ctrl)

	session := operatorSession(entity.PermUsers)
	ctx := sessionCtx(session)
	roleID := uuid.Must(uuid.NewV4())

	input := service.UserInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "secret",
		RoleID:   &roleID,
	}

	repo.EXPECT().CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u entity.User) error {
			require.NotEqual(t, "secret", u.PasswordHash)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))
			return nil
		})
	repo.EXPECT().UserByID(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (entity.User, error) {
			return entity.User{ID: id, Name: "Jane", Email: "jane@example.com", RoleID: &roleID}, nil
		})
	auditor.EXPECT().SendEntityChanged(ctx, session.UserID, "user", "create", gomock.Any())

	s := service.New(testConfig(), repo, nil, auditor)

	user, err := s.CreateUser(ctx, input)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", user.Email)
}

func TestService_CreateUser_ShortPassword(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	ctx := sessionCtx(operatorSession(entity.PermUsers))

	s := service.New(testConfig(), repo, nil, nil)

	_, err := s.CreateUser(ctx, service.UserInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "abc",
	})
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestService_UpdateUser_EmptyPasswordKeepsHash(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	auditor := mocks.NewMockAuditor(ctrl)

	session := operatorSession(entity.PermUsers)
	ctx := sessionCtx(session)
	id := uuid.Must(uuid.NewV4())

	repo.EXPECT().UpdateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u entity.User) error {
			// The empty hash signals the repository to keep the stored one.
			require.Empty(t, u.PasswordHash)
			return nil
		})
	repo.EXPECT().UserByID(ctx, id).Return(entity.User{ID: id, Name: "Jane", Email: "jane@example.com"}, nil)
	auditor.EXPECT().SendEntityChanged(ctx, session.UserID, "user", "update", id.String())

	s := service.New(testConfig(), repo, nil, auditor)

	_, err := s.UpdateUser(ctx, id, service.UserInput{
		Name:  "Jane",
		Email: "jane@example.com",
	})
	require.NoError(t, err)
}

func TestService_DeleteUser_MissingPermission(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	ctx := sessionCtx(operatorSession(entity.PermContacts))

	s := service.New(testConfig(), repo, nil, nil)

	err := s.DeleteUser(ctx, uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, entity.ErrForbidden)
}

func TestService_UpdateRole_NilPermissionsKeepsSet(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	auditor := mocks.NewMockAuditor(ctrl)

	session := operatorSession()
	ctx := sessionCtx(session)
	id := uuid.Must(uuid.NewV4())

	repo.EXPECT().UpdateRole(ctx, gomock.Any(), gomock.Nil()).Return(nil)
	repo.EXPECT().RoleByID(ctx, id).Return(entity.Role{ID: id, Name: "SUPPORT"}, nil)
	auditor.EXPECT().SendEntityChanged(ctx, session.UserID, "role", "update", id.String())

	s := service.New(testConfig(), repo, nil, auditor)

	role, err := s.UpdateRole(ctx, id, "SUPPORT", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "SUPPORT", role.Name)
}

func TestService_ListUsers_NoSession(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	s := service.New(testConfig(), repo, nil, nil)

	_, err := s.ListUsers(context.Background())
	require.ErrorIs(t, err, entity.ErrUnauthorized)
}
