package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
	"github.com/BlufyTeam/contacts/internal/service"
)

type Service interface {
	Login(ctx context.Context, email, password string) (entity.SessionTokens, error)

	ListOrganizations(ctx context.Context) ([]entity.Organization, error)
	CreateOrganization(ctx context.Context, name string) (entity.Organization, error)
	UpdateOrganization(ctx context.Context, id uuid.UUID, name string) (entity.Organization, error)
	DeleteOrganization(ctx context.Context, id uuid.UUID) error

	ListContacts(ctx context.Context, filter entity.ContactsFilter) ([]entity.Contact, error)
	CreateContact(ctx context.Context, input entity.Contact) (entity.Contact, error)
	UpdateContact(ctx context.Context, input entity.Contact) (entity.Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error

	ListUsers(ctx context.Context) ([]entity.User, error)
	CreateUser(ctx context.Context, input service.UserInput) (entity.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input service.UserInput) (entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	ListRoles(ctx context.Context) ([]entity.Role, error)
	RoleByID(ctx context.Context, id uuid.UUID) (entity.Role, error)
	CreateRole(ctx context.Context, name string, description *string, permissionIDs []uuid.UUID) (entity.Role, error)
	UpdateRole(ctx context.Context, id uuid.UUID, name string, description *string, permissionIDs []uuid.UUID) (entity.Role, error)
	DeleteRole(ctx context.Context, id uuid.UUID) error

	ListPermissions(ctx context.Context) ([]entity.Permission, error)
	PermissionByID(ctx context.Context, id uuid.UUID) (entity.Permission, error)
	CreatePermission(ctx context.Context, name string) (entity.Permission, error)
	UpdatePermission(ctx context.Context, id uuid.UUID, name string) (entity.Permission, error)
	DeletePermission(ctx context.Context, id uuid.UUID) error

	ListDocuments(ctx context.Context) ([]entity.Document, error)
	CreateDocument(ctx context.Context, name string, description *string, fileURL, fileType string) (entity.Document, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error

	Upload(ctx context.Context, originalName, contentType string, r io.Reader) (entity.UploadedFile, error)
	ExportContacts(ctx context.Context) ([]byte, error)
	ImportContacts(ctx context.Context, r io.Reader) (service.ImportResult, error)
}

// @title Contact Directory API
// @version 1.0
// @description Contact directory and IT document management with role-based access control.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s,
	}
}

// Health godoc
// @Summary      Service health check
// @Tags         health
// @Success      200 {string} string "ok"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("ok\n"))
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "Service unavailable")
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Verify credentials and issue a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} entity.SessionTokens
// @Failure      401 {object} ResponseError "Invalid credentials"
// @Router       /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, entity.ErrIncorrectRequestBody, "Incorrect request body")
		return
	}

	tokens, err := h.s.Login(ctx, req.Email, req.Password)
	if err != nil {
		SendDomainErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, tokens)
}

func idFromURL(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.FromString(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, entity.ErrIncorrectRequestBody
	}

	return id, nil
}
