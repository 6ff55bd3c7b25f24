package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/BlufyTeam/contacts/internal/entity"
)

func (s *Service) ListDocuments(ctx context.Context) ([]entity.Document, error) {
	return s.repo.ListDocuments(ctx)
}

// Upload streams one file into the managed upload directory and returns the
// reference to carry into CreateDocument. The store enforces the size ceiling
// and never leaves partial files behind.
func (s *Service) Upload(ctx context.Context, originalName, contentType string, r io.Reader) (entity.UploadedFile, error) {
	if originalName == "" {
		return entity.UploadedFile{}, entity.ErrNoFile
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.files.Save(originalName, r)
	if err != nil {
		return entity.UploadedFile{}, err
	}

	slog.InfoContext(ctx, "file uploaded", "url", url, "mimeType", contentType)

	return entity.UploadedFile{
		URL:      url,
		MimeType: contentType,
	}, nil
}

func (s *Service) CreateDocument(ctx context.Context, name string, description *string, fileURL, fileType string) (entity.Document, error) {
	session, err := s.requireSession(ctx)
	if err != nil {
		return entity.Document{}, err
	}

	if err := ValidateRequired("name", name); err != nil {
		return entity.Document{}, err
	}

	if !strings.HasPrefix(fileURL, s.cfg.Upload.URLPrefix+"/") {
		return entity.Document{}, fmt.Errorf("%w: fileUrl must be under %s/", entity.ErrInvalidInput, s.cfg.Upload.URLPrefix)
	}

	if !s.files.Exists(fileURL) {
		return entity.Document{}, fmt.Errorf("%w: no uploaded file at %s", entity.ErrInvalidInput, fileURL)
	}

	doc := entity.Document{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        name,
		Description: description,
		FileURL:     fileURL,
		FileType:    fileType,
		CreatedAt:   time.Now(),
	}

	err = s.repo.CreateDocument(ctx, doc)
	if err != nil {
		return entity.Document{}, fmt.Errorf("create document: %w", err)
	}

	s.audit(ctx, session, "itDocument", "create", doc.ID)

	return doc, nil
}

// DeleteDocument removes the record and best-effort removes the backing file:
// a file that is already gone never blocks the delete.
func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	session, err := s.requireSession(ctx)
	if err != nil {
		return err
	}

	doc, err := s.repo.DocumentByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.DeleteDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	err = s.files.Remove(doc.FileURL)
	if err != nil {
		slog.WarnContext(ctx, "failed to remove document file", "fileUrl", doc.FileURL, "error", err)
	}

	s.audit(ctx, session, "itDocument", "delete", id)

	return nil
}
