package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
)

func (s *Service) ListOrganizations(ctx context.Context) ([]entity.Organization, error) {
	return s.repo.ListOrganizations(ctx)
}

func (s *Service) CreateOrganization(ctx context.Context, name string) (entity.Organization, error) {
	session, err := s.requireModule(ctx, entity.PermOrganizations)
	if err != nil {
		return entity.Organization{}, err
	}

	if err := ValidateRequired("name", name); err != nil {
		return entity.Organization{}, err
	}

	org := entity.Organization{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}

	err = s.repo.CreateOrganization(ctx, org)
	if err != nil {
		return entity.Organization{}, fmt.Errorf("create organization: %w", err)
	}

	s.audit(ctx, session, "organization", "create", org.ID)

	return org, nil
}

func (s *Service) UpdateOrganization(ctx context.Context, id uuid.UUID, name string) (entity.Organization, error) {
	session, err := s.requireModule(ctx, entity.PermOrganizations)
	if err != nil {
		return entity.Organization{}, err
	}

	if err := ValidateRequired("name", name); err != nil {
		return entity.Organization{}, err
	}

	org := entity.Organization{
		ID:   id,
		Name: strings.TrimSpace(name),
	}

	err = s.repo.UpdateOrganization(ctx, org)
	if err != nil {
		return entity.Organization{}, fmt.Errorf("update organization: %w", err)
	}

	updated, err := s.repo.OrganizationByID(ctx, id)
	if err != nil {
		return entity.Organization{}, err
	}

	s.audit(ctx, session, "organization", "update", id)

	return updated, nil
}

func (s *Service) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	session, err := s.requireModule(ctx, entity.PermOrganizations)
	if err != nil {
		return err
	}

	err = s.repo.DeleteOrganization(ctx, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}

	s.audit(ctx, session, "organization", "delete", id)

	return nil
}

func (s *Service) ListContacts(ctx context.Context, filter entity.ContactsFilter) ([]entity.Contact, error) {
	return s.repo.ListContacts(ctx, filter)
}

func validateContactInput(c entity.Contact) error {
	if err := ValidateRequired("fullName", c.FullName); err != nil {
		return err
	}

	if err := ValidateEmail(c.Email); err != nil {
		return err
	}

	if c.OrganizationID.IsNil() {
		return fmt.Errorf("%w: organizationId is required", entity.ErrInvalidInput)
	}

	return nil
}

func (s *Service) CreateContact(ctx context.Context, input entity.Contact) (entity.Contact, error) {
	session, err := s.requireModule(ctx, entity.PermContacts)
	if err != nil {
		return entity.Contact{}, err
	}

	if err := validateContactInput(input); err != nil {
		return entity.Contact{}, err
	}

	input.ID = uuid.Must(uuid.NewV4())
	input.CreatedAt = time.Now()

	err = s.repo.CreateContact(ctx, input)
	if err != nil {
		return entity.Contact{}, fmt.Errorf("create contact: %w", err)
	}

	created, err := s.repo.ContactByID(ctx, input.ID)
	if err != nil {
		return entity.Contact{}, err
	}

	s.audit(ctx, session, "contact", "create", input.ID)

	return created, nil
}

func (s *Service) UpdateContact(ctx context.Context, input entity.Contact) (entity.Contact, error) {
	session, err := s.requireModule(ctx, entity.PermContacts)
	if err != nil {
		return entity.Contact{}, err
	}

	if input.ID.IsNil() {
		return entity.Contact{}, fmt.Errorf("%w: id is required", entity.ErrInvalidInput)
	}

	if err := validateContactInput(input); err != nil {
		return entity.Contact{}, err
	}

	err = s.repo.UpdateContact(ctx, input)
	if err != nil {
		return entity.Contact{}, fmt.Errorf("update contact: %w", err)
	}

	updated, err := s.repo.ContactByID(ctx, input.ID)
	if err != nil {
		return entity.Contact{}, err
	}

	s.audit(ctx, session, "contact", "update", input.ID)

	return updated, nil
}

func (s *Service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	session, err := s.requireModule(ctx, entity.PermContacts)
	if err != nil {
		return err
	}

	err = s.repo.DeleteContact(ctx, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	s.audit(ctx, session, "contact", "delete", id)

	return nil
}

// importContact inserts one parsed spreadsheet row. Split out so import can
// commit rows independently.
func (s *Service) importContact(ctx context.Context, row ContactImportRow) error {
	orgID, err := uuid.FromString(row.OrganizationID)
	if err != nil {
		return fmt.Errorf("%w: bad organizationId %q", entity.ErrInvalidInput, row.OrganizationID)
	}

	contact := entity.Contact{
		ID:             uuid.Must(uuid.NewV4()),
		FullName:       row.FullName,
		Email:          row.Email,
		Extension:      row.Extension,
		OrganizationID: orgID,
		CreatedAt:      time.Now(),
	}

	err = s.repo.CreateContact(ctx, contact)
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "imported contact", "fullName", row.FullName)

	return nil
}
