package service_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BlufyTeam/contacts/internal/entity"
	"github.com/BlufyTeam/contacts/internal/mocks"
	"github.com/BlufyTeam/contacts/internal/service"
)

func TestService_Upload(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	files := mocks.NewMockFileStore(ctrl)

	files.EXPECT().Save("report.pdf", gomock.Any()).
		Return("/uploads/it_files/1700000000000-report.pdf", nil)

	s := service.New(testConfig(), nil, files, nil)

	file, err := s.Upload(context.Background(), "report.pdf", "application/pdf", strings.NewReader("%PDF-"))
	require.NoError(t, err)
	require.Equal(t, "/uploads/it_files/1700000000000-report.pdf", file.URL)
	require.Equal(t, "application/pdf", file.MimeType)
}

func TestService_Upload_NoName(t *testing.T) {
	t.Parallel()

	s := service.New(testConfig(), nil, nil, nil)

	_, err := s.Upload(context.Background(), "", "application/pdf", strings.NewReader("x"))
	require.ErrorIs(t, err, entity.ErrNoFile)
}

func TestService_Upload_DefaultMimeType(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	files := mocks.NewMockFileStore(ctrl)

	files.EXPECT().Save("blob", gomock.Any()).Return("/uploads/it_files/1-blob", nil)

	s := service.New(testConfig(), nil, files, nil)

	file, err := s.Upload(context.Background(), "blob", "", strings.NewReader("x"))
	require.NoError(t, err)
	require.Equal(t, "application/octet-stream", file.MimeType)
}

func TestService_CreateDocument(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	files := mocks.NewMockFileStore(ctrl)
	auditor := mocks.NewMockAuditor(ctrl)

	session := operatorSession()
	ctx := sessionCtx(session)
	fileURL := "/uploads/it_files/1700000000000-guide.pdf"

	files.EXPECT().Exists(fileURL).Return(true)
	repo.EXPECT().CreateDocument(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, doc entity.Document) error {
			require.Equal(t, "VPN guide", doc.Name)
			require.Equal(t, fileURL, doc.FileURL)
			require.Equal(t, "PDF", doc.FileType)
			return nil
		})
	auditor.EXPECT().SendEntityChanged(ctx, session.UserID, "itDocument", "create", gomock.Any())

	s := service.New(testConfig(), repo, files, auditor)

	doc, err := s.CreateDocument(ctx, "VPN guide", nil, fileURL, service.FileLabel("application/pdf"))
	require.NoError(t, err)
	require.False(t, doc.ID.IsNil())
}

func TestService_CreateDocument_BadFileURL(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	files := mocks.NewMockFileStore(ctrl)

	ctx := sessionCtx(operatorSession())

	s := service.New(testConfig(), repo, files, nil)

	_, err := s.CreateDocument(ctx, "VPN guide", nil, "/etc/passwd", "PDF")
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestService_CreateDocument_MissingFile(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	files := mocks.NewMockFileStore(ctrl)

	ctx := sessionCtx(operatorSession())
	fileURL := "/uploads/it_files/1700000000000-gone.pdf"

	files.EXPECT().Exists(fileURL).Return(false)

	s := service.New(testConfig(), repo, files, nil)

	_, err := s.CreateDocument(ctx, "VPN guide", nil, fileURL, "PDF")
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestService_DeleteDocument_FileAlreadyGone(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	files := mocks.NewMockFileStore(ctrl)
	auditor := mocks.NewMockAuditor(ctrl)

	session := operatorSession()
	ctx := sessionCtx(session)
	id := uuid.Must(uuid.NewV4())
	fileURL := "/uploads/it_files/1700000000000-old.pdf"

	repo.EXPECT().DocumentByID(ctx, id).Return(entity.Document{ID: id, FileURL: fileURL}, nil)
	repo.EXPECT().DeleteDocument(ctx, id).Return(nil)
	files.EXPECT().Remove(fileURL).Return(errors.New("stat: " + os.ErrNotExist.Error()))
	auditor.EXPECT().SendEntityChanged(ctx, session.UserID, "itDocument", "delete", id.String())

	s := service.New(testConfig(), repo, files, auditor)

	// A missing backing file never blocks the record delete.
	err := s.DeleteDocument(ctx, id)
	require.NoError(t, err)
}
