package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/BlufyTeam/contacts/internal/entity"
	"github.com/BlufyTeam/contacts/internal/mocks"
	"github.com/BlufyTeam/contacts/internal/service"
	"github.com/BlufyTeam/contacts/pkg/config"
)

func testConfig() config.Config {
	return config.Config{
		JWT: config.JWT{
			Secret:   "test-secret",
			TokenTTL: time.Hour,
		},
		Upload: config.Upload{
			Dir:       "public/uploads/it_files",
			URLPrefix: "/uploads/it_files",
			MaxBytes:  20971520,
		},
	}
}

func testUser(t *testing.T, password string) entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	roleName := "SUPPORT"

	return entity.User{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         "Jane",
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role: &entity.Role{
			Name: roleName,
			Permissions: []entity.Permission{
				{Name: entity.PermContacts},
			},
		},
	}
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	user := testUser(t, "secret")

	repo.EXPECT().UserByEmail(context.Background(), user.Email).Return(user, nil)

	s := service.New(testConfig(), repo, nil, nil)

	tokens, err := s.Login(context.Background(), user.Email, "secret")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)

	// The issued token must round-trip into the same identity claim.
	session, err := s.ValidateToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, session.UserID)
	require.Equal(t, "SUPPORT", session.Role)
	require.Equal(t, []string{entity.PermContacts}, session.Permissions)
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	user := testUser(t, "secret")

	repo.EXPECT().UserByEmail(context.Background(), user.Email).Return(user, nil)

	s := service.New(testConfig(), repo, nil, nil)

	_, err := s.Login(context.Background(), user.Email, "wrong")
	require.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	repo.EXPECT().UserByEmail(context.Background(), "nobody@example.com").
		Return(entity.User{}, entity.ErrNotFound)

	s := service.New(testConfig(), repo, nil, nil)

	_, err := s.Login(context.Background(), "nobody@example.com", "secret")
	require.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestService_ValidateToken_Tampered(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	user := testUser(t, "secret")

	repo.EXPECT().UserByEmail(context.Background(), user.Email).Return(user, nil)

	s := service.New(testConfig(), repo, nil, nil)

	tokens, err := s.Login(context.Background(), user.Email, "secret")
	require.NoError(t, err)

	tampered := tokens.AccessToken[:len(tokens.AccessToken)-2] + "xx"

	_, err = s.ValidateToken(context.Background(), tampered)
	require.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestService_ValidateToken_Expired(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	user := testUser(t, "secret")

	repo.EXPECT().UserByEmail(context.Background(), user.Email).Return(user, nil)

	cfg := testConfig()
	cfg.JWT.TokenTTL = -time.Minute // issue an already expired token

	s := service.New(cfg, repo, nil, nil)

	tokens, err := s.Login(context.Background(), user.Email, "secret")
	require.NoError(t, err)

	_, err = s.ValidateToken(context.Background(), tokens.AccessToken)
	require.ErrorIs(t, err, entity.ErrTokenExpired)
}

func TestService_EnsureAdmin(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	adminRole := entity.Role{
		ID:   uuid.Must(uuid.NewV4()),
		Name: entity.RoleAdmin,
	}

	repo.EXPECT().UserByEmail(context.Background(), "admin@example.com").
		Return(entity.User{}, entity.ErrNotFound)
	repo.EXPECT().RoleByName(context.Background(), entity.RoleAdmin).Return(adminRole, nil)
	repo.EXPECT().CreateUser(context.Background(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u entity.User) error {
			require.Equal(t, "admin@example.com", u.Email)
			require.NotNil(t, u.RoleID)
			require.Equal(t, adminRole.ID, *u.RoleID)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("changeme")))
			return nil
		})

	s := service.New(testConfig(), repo, nil, nil)

	err := s.EnsureAdmin(context.Background(), "admin@example.com", "changeme")
	require.NoError(t, err)
}

func TestService_EnsureAdmin_AlreadyExists(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	repo.EXPECT().UserByEmail(context.Background(), "admin@example.com").
		Return(entity.User{Email: "admin@example.com"}, nil)

	s := service.New(testConfig(), repo, nil, nil)

	err := s.EnsureAdmin(context.Background(), "admin@example.com", "changeme")
	require.NoError(t, err)
}

func TestService_EnsureAdmin_Unconfigured(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	s := service.New(testConfig(), repo, nil, nil)

	err := s.EnsureAdmin(context.Background(), "", "")
	require.NoError(t, err)
}
