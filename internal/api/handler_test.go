package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/BlufyTeam/contacts/internal/api"
	"github.com/BlufyTeam/contacts/internal/entity"
	"github.com/BlufyTeam/contacts/internal/filestore"
	"github.com/BlufyTeam/contacts/internal/mocks"
	"github.com/BlufyTeam/contacts/internal/service"
	"github.com/BlufyTeam/contacts/pkg/config"
)

type testAPI struct {
	server *httptest.Server
	repo   *mocks.MockRepository
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	cfg := config.Config{
		JWT: config.JWT{
			Secret:   "test-secret",
			TokenTTL: time.Hour,
		},
		Upload: config.Upload{
			Dir:       t.TempDir(),
			URLPrefix: "/uploads/it_files",
			MaxBytes:  1 << 20,
		},
	}

	files, err := filestore.New(cfg.Upload.Dir, cfg.Upload.URLPrefix, cfg.Upload.MaxBytes)
	require.NoError(t, err)

	s := service.New(cfg, repo, files, nil)

	handler := api.NewHandler(s)
	mw := api.NewMiddleware(s)

	server := httptest.NewServer(api.NewRouter(handler, mw, cfg.Upload.URLPrefix, cfg.Upload.Dir))
	t.Cleanup(server.Close)

	return &testAPI{
		server: server,
		repo:   repo,
	}
}

// login runs the real credential flow against the mocked repository and
// returns a bearer token for the given role and permissions.
func (a *testAPI) login(t *testing.T, role string, perms ...string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	permissions := make([]entity.Permission, 0, len(perms))
	for _, name := range perms {
		permissions = append(permissions, entity.Permission{Name: name})
	}

	user := entity.User{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         "Test user",
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role: &entity.Role{
			Name:        role,
			Permissions: permissions,
		},
	}

	a.repo.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)

	body := strings.NewReader(`{"email":"user@example.com","password":"secret"}`)

	resp, err := http.Post(a.server.URL+"/api/login", "application/json", body)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens entity.SessionTokens

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))
	require.NotEmpty(t, tokens.AccessToken)

	return tokens.AccessToken
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	resp, err := http.Get(a.server.URL + "/api/health")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.repo.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(entity.User{}, entity.ErrNotFound)

	body := strings.NewReader(`{"email":"user@example.com","password":"wrong"}`)

	resp, err := http.Post(a.server.URL+"/api/login", "application/json", body)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_ListContacts_Public(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.repo.EXPECT().ListContacts(gomock.Any(), entity.ContactsFilter{}).
		Return([]entity.Contact{{FullName: "Jane Doe"}}, nil)

	resp, err := http.Get(a.server.URL + "/api/contacts")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var contacts []entity.Contact

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&contacts))
	require.Len(t, contacts, 1)
	require.Equal(t, "Jane Doe", contacts[0].FullName)
}

func TestHandler_CreateContact_NoToken(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	body := strings.NewReader(`{"fullName":"Jane Doe"}`)

	resp, err := http.Post(a.server.URL+"/api/contacts", "application/json", body)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_CreateContact(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	token := a.login(t, "OPERATOR", entity.PermContacts)
	orgID := uuid.Must(uuid.NewV4())

	a.repo.EXPECT().CreateContact(gomock.Any(), gomock.Any()).Return(nil)
	a.repo.EXPECT().ContactByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (entity.Contact, error) {
			return entity.Contact{ID: id, FullName: "Jane Doe", Email: "jane@example.com", OrganizationID: orgID}, nil
		})

	body := strings.NewReader(`{
		"fullName": "Jane Doe",
		"email": "jane@example.com",
		"extension": "104",
		"organizationId": "` + orgID.String() + `"
	}`)

	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/api/contacts", body)
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHandler_CreateContact_MissingPermission(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	token := a.login(t, "OPERATOR", entity.PermUsers)

	body := strings.NewReader(`{
		"fullName": "Jane Doe",
		"email": "jane@example.com",
		"organizationId": "` + uuid.Must(uuid.NewV4()).String() + `"
	}`)

	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/api/contacts", body)
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHandler_Upload(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	var buf bytes.Buffer

	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", "report.pdf")
	require.NoError(t, err)

	_, err = part.Write([]byte("%PDF-1.7 test"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	resp, err := http.Post(a.server.URL+"/api/upload", form.FormDataContentType(), &buf)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var file entity.UploadedFile

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&file))
	require.True(t, strings.HasPrefix(file.URL, "/uploads/it_files/"))
	require.True(t, strings.HasSuffix(file.URL, "-report.pdf"))
	require.Equal(t, "application/octet-stream", file.MimeType)

	// The returned URL must serve the stored bytes back.
	served, err := http.Get(a.server.URL + file.URL)
	require.NoError(t, err)

	defer served.Body.Close()

	require.Equal(t, http.StatusOK, served.StatusCode)
}

func TestHandler_Upload_NoFile(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	var buf bytes.Buffer

	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("other", "value"))
	require.NoError(t, form.Close())

	resp, err := http.Post(a.server.URL+"/api/upload", form.FormDataContentType(), &buf)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_ExportContacts(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.repo.EXPECT().ListContacts(gomock.Any(), entity.ContactsFilter{}).
		Return([]entity.Contact{{FullName: "Jane Doe", Email: "jane@example.com"}}, nil)

	resp, err := http.Get(a.server.URL + "/api/export-contacts")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "contacts.xlsx")
}
