package service

import (
	"context"
	"fmt"
	"io"

	"github.com/gofrs/uuid/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
	"github.com/BlufyTeam/contacts/pkg/config"
)

//go:generate mockgen -source=service.go -destination=../mocks/mocks.go -package=mocks

type Repository interface {
	ListOrganizations(ctx context.Context) ([]entity.Organization, error)
	OrganizationByID(ctx context.Context, id uuid.UUID) (entity.Organization, error)
	CreateOrganization(ctx context.Context, org entity.Organization) error
	UpdateOrganization(ctx context.Context, org entity.Organization) error
	DeleteOrganization(ctx context.Context, id uuid.UUID) error

	ListContacts(ctx context.Context, filter entity.ContactsFilter) ([]entity.Contact, error)
	ContactByID(ctx context.Context, id uuid.UUID) (entity.Contact, error)
	CreateContact(ctx context.Context, c entity.Contact) error
	UpdateContact(ctx context.Context, c entity.Contact) error
	DeleteContact(ctx context.Context, id uuid.UUID) error

	ListUsers(ctx context.Context) ([]entity.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (entity.User, error)
	UserByEmail(ctx context.Context, email string) (entity.User, error)
	CreateUser(ctx context.Context, u entity.User) error
	UpdateUser(ctx context.Context, u entity.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	ListRoles(ctx context.Context) ([]entity.Role, error)
	RoleByID(ctx context.Context, id uuid.UUID) (entity.Role, error)
	RoleByName(ctx context.Context, name string) (entity.Role, error)
	CreateRole(ctx context.Context, role entity.Role, permissionIDs []uuid.UUID) error
	UpdateRole(ctx context.Context, role entity.Role, permissionIDs []uuid.UUID) error
	DeleteRole(ctx context.Context, id uuid.UUID) error

	ListPermissions(ctx context.Context) ([]entity.Permission, error)
	PermissionByID(ctx context.Context, id uuid.UUID) (entity.Permission, error)
	CreatePermission(ctx context.Context, p entity.Permission) error
	UpdatePermission(ctx context.Context, p entity.Permission) error
	DeletePermission(ctx context.Context, id uuid.UUID) error

	ListDocuments(ctx context.Context) ([]entity.Document, error)
	DocumentByID(ctx context.Context, id uuid.UUID) (entity.Document, error)
	CreateDocument(ctx context.Context, doc entity.Document) error
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

type FileStore interface {
	Save(originalName string, r io.Reader) (string, error)
	Exists(fileURL string) bool
	Remove(fileURL string) error
}

type Auditor interface {
	SendEntityChanged(ctx context.Context, actorID uuid.UUID, entityName, action, entityID string)
}

type Service struct {
	cfg     config.Config
	repo    Repository
	files   FileStore
	auditor Auditor
}

func New(cfg config.Config, repo Repository, files FileStore, auditor Auditor) *Service {
	return &Service{
		cfg:     cfg,
		repo:    repo,
		files:   files,
		auditor: auditor,
	}
}

// requireSession returns the verified identity claim of the request, or
// ErrUnauthorized before any storage is touched.
func (s *Service) requireSession(ctx context.Context) (entity.Session, error) {
	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		return entity.Session{}, entity.ErrUnauthorized
	}

	return session, nil
}

// requireModule additionally checks that the caller's access scope covers the
// given module permission.
func (s *Service) requireModule(ctx context.Context, module string) (entity.Session, error) {
	session, err := s.requireSession(ctx)
	if err != nil {
		return entity.Session{}, err
	}

	if !session.Scope().Allows(module) {
		return entity.Session{}, fmt.Errorf("%w: missing %q permission", entity.ErrForbidden, module)
	}

	return session, nil
}

func (s *Service) audit(ctx context.Context, session entity.Session, entityName, action string, entityID uuid.UUID) {
	if s.auditor == nil {
		return
	}

	s.auditor.SendEntityChanged(ctx, session.UserID, entityName, action, entityID.String())
}
