package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
)

type UserInput struct {
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Password       string     `json:"password"`
	Extension      *string    `json:"extension"`
	RoleID         *uuid.UUID `json:"roleId"`
	OrganizationID *uuid.UUID `json:"organizationId"`
}

func (s *Service) ListUsers(ctx context.Context) ([]entity.User, error) {
	_, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	return s.repo.ListUsers(ctx)
}

func (s *Service) CreateUser(ctx context.Context, input UserInput) (entity.User, error) {
	session, err := s.requireModule(ctx, entity.PermUsers)
	if err != nil {
		return entity.User{}, err
	}

	if err := ValidateRequired("name", input.Name); err != nil {
		return entity.User{}, err
	}

	if err := ValidateEmail(input.Email); err != nil {
		return entity.User{}, err
	}

	if err := ValidatePassword(input.Password); err != nil {
		return entity.User{}, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return entity.User{}, err
	}

	user := entity.User{
		ID:             uuid.Must(uuid.NewV4()),
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   hash,
		Extension:      input.Extension,
		RoleID:         input.RoleID,
		OrganizationID: input.OrganizationID,
		CreatedAt:      time.Now(),
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		return entity.User{}, fmt.Errorf("create user: %w", err)
	}

	created, err := s.repo.UserByID(ctx, user.ID)
	if err != nil {
		return entity.User{}, err
	}

	s.audit(ctx, session, "user", "create", user.ID)

	return created, nil
}

// UpdateUser replaces the user's profile; an empty Password keeps the stored
// hash, a supplied one is re-hashed before persisting.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, input UserInput) (entity.User, error) {
	session, err := s.requireModule(ctx, entity.PermUsers)
	if err != nil {
		return entity.User{}, err
	}

	if err := ValidateRequired("name", input.Name); err != nil {
		return entity.User{}, err
	}

	if err := ValidateEmail(input.Email); err != nil {
		return entity.User{}, err
	}

	var hash string

	if input.Password != "" {
		if err := ValidatePassword(input.Password); err != nil {
			return entity.User{}, err
		}

		hash, err = hashPassword(input.Password)
		if err != nil {
			return entity.User{}, err
		}
	}

	user := entity.User{
		ID:             id,
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   hash,
		Extension:      input.Extension,
		RoleID:         input.RoleID,
		OrganizationID: input.OrganizationID,
	}

	err = s.repo.UpdateUser(ctx, user)
	if err != nil {
		return entity.User{}, fmt.Errorf("update user: %w", err)
	}

	updated, err := s.repo.UserByID(ctx, id)
	if err != nil {
		return entity.User{}, err
	}

	s.audit(ctx, session, "user", "update", id)

	return updated, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	session, err := s.requireModule(ctx, entity.PermUsers)
	if err != nil {
		return err
	}

	err = s.repo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.audit(ctx, session, "user", "delete", id)

	return nil
}

func (s *Service) ListRoles(ctx context.Context) ([]entity.Role, error) {
	_, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	return s.repo.ListRoles(ctx)
}

func (s *Service) RoleByID(ctx context.Context, id uuid.UUID) (entity.Role, error) {
	_, err := s.requireSession(ctx)
	if err != nil {
		return entity.Role{}, err
	}

	return s.repo.RoleByID(ctx, id)
}

func (s *Service) CreateRole(ctx context.Context, name string, description *string, permissionIDs []uuid.UUID) (entity.Role, error) {
	session, err := s.requireSession(ctx)
	if err != nil {
		return entity.Role{}, err
	}

	if err := ValidateRequired("name", name); err != nil {
		return entity.Role{}, err
	}

	role := entity.Role{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}

	err = s.repo.CreateRole(ctx, role, permissionIDs)
	if err != nil {
		return entity.Role{}, fmt.Errorf("create role: %w", err)
	}

	created, err := s.repo.RoleByID(ctx, role.ID)
	if err != nil {
		return entity.Role{}, err
	}

	s.audit(ctx, session, "role", "create", role.ID)

	return created, nil
}

// UpdateRole replaces name/description; a non-nil permissionIDs replaces the
// permission link set, nil keeps it.
func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, name string, description *string, permissionIDs []uuid.UUID) (entity.Role, error) {
	session, err := s.requireSession(ctx)
	if err != nil {
		return entity.Role{}, err
	}

	if err := ValidateRequired("name", name); err != nil {
		return entity.Role{}, err
	}

	role := entity.Role{
		ID:          id,
		Name:        name,
		Description: description,
	}

	err = s.repo.UpdateRole(ctx, role, permissionIDs)
	if err != nil {
		return entity.Role{}, fmt.Errorf("update role: %w", err)
	}

	updated, err := s.repo.RoleByID(ctx, id)
	if err != nil {
		return entity.Role{}, err
	}

	s.audit(ctx, session, "role", "update", id)

	return updated, nil
}

func (s *Service) DeleteRole(ctx context.Context, id uuid.UUID) error {
	session, err := s.requireSession(ctx)
	if err != nil {
		return err
	}

	err = s.repo.DeleteRole(ctx, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	s.audit(ctx, session, "role", "delete", id)

	return nil
}

func (s *Service) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	_, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	return s.repo.ListPermissions(ctx)
}

func (s *Service) PermissionByID(ctx context.Context, id uuid.UUID) (entity.Permission, error) {
	_, err := s.requireSession(ctx)
	if err != nil {
		return entity.Permission{}, err
	}

	return s.repo.PermissionByID(ctx, id)
}

func (s *Service) CreatePermission(ctx context.Context, name string) (entity.Permission, error) {
	session, err := s.requireSession(ctx)
	if err != nil {
		return entity.Permission{}, err
	}

	if err := ValidateRequired("name", name); err != nil {
		return entity.Permission{}, err
	}

	perm := entity.Permission{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      name,
		CreatedAt: time.Now(),
	}

	err = s.repo.CreatePermission(ctx, perm)
	if err != nil {
		return entity.Permission{}, fmt.Errorf("create permission: %w", err)
	}

	s.audit(ctx, session, "permission", "create", perm.ID)

	return perm, nil
}

func (s *Service) UpdatePermission(ctx context.Context, id uuid.UUID, name string) (entity.Permission, error) {
	session, err := s.requireSession(ctx)
	if err != nil {
		return entity.Permission{}, err
	}

	if err := ValidateRequired("name", name); err != nil {
		return entity.Permission{}, err
	}

	perm := entity.Permission{
		ID:   id,
		Name: name,
	}

	err = s.repo.UpdatePermission(ctx, perm)
	if err != nil {
		return entity.Permission{}, fmt.Errorf("update permission: %w", err)
	}

	updated, err := s.repo.PermissionByID(ctx, id)
	if err != nil {
		return entity.Permission{}, err
	}

	s.audit(ctx, session, "permission", "update", id)

	return updated, nil
}

func (s *Service) DeletePermission(ctx context.Context, id uuid.UUID) error {
	session, err := s.requireSession(ctx)
	if err != nil {
		return err
	}

	err = s.repo.DeletePermission(ctx, id)
	if err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}

	s.audit(ctx, session, "permission", "delete", id)

	return nil
}
