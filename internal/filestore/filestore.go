package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/BlufyTeam/contacts/internal/entity"
)

// Store keeps uploaded files on local disk under a single managed directory.
// Files are written to a temp file first and renamed into place only after the
// whole payload fit under the size ceiling, so a returned URL always points at
// a complete file.
type Store struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

func New(dir, urlPrefix string, maxBytes int64) (*Store, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &Store{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		maxBytes:  maxBytes,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save streams r to disk under a unique name derived from originalName and
// returns the public URL of the stored file. Crossing the size ceiling aborts
// the copy and leaves nothing behind.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: %s", entity.ErrSaveFailed, err)
	}

	written, err := io.CopyN(tmp, r, s.maxBytes+1)
	closeErr := tmp.Close()

	if err != nil && !errors.Is(err, io.EOF) {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %s", entity.ErrSaveFailed, err)
	}

	if written > s.maxBytes {
		_ = os.Remove(tmp.Name())
		return "", entity.ErrFileTooLarge
	}

	if closeErr != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %s", entity.ErrSaveFailed, closeErr)
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeName(originalName))

	err = os.Rename(tmp.Name(), filepath.Join(s.dir, name))
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %s", entity.ErrSaveFailed, err)
	}

	return s.urlPrefix + "/" + name, nil
}

// Exists reports whether fileURL references a file present under the managed
// directory.
func (s *Store) Exists(fileURL string) bool {
	p, err := s.diskPath(fileURL)
	if err != nil {
		return false
	}

	_, err = os.Stat(p)

	return err == nil
}

// Remove deletes the file referenced by fileURL. A file that is already gone
// is not an error.
func (s *Store) Remove(fileURL string) error {
	p, err := s.diskPath(fileURL)
	if err != nil {
		return err
	}

	err = os.Remove(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

func (s *Store) diskPath(fileURL string) (string, error) {
	if !strings.HasPrefix(fileURL, s.urlPrefix+"/") {
		return "", fmt.Errorf("%w: file url outside upload root", entity.ErrInvalidInput)
	}

	name := path.Base(fileURL)
	if name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("%w: bad file name", entity.ErrInvalidInput)
	}

	return filepath.Join(s.dir, name), nil
}

// sanitizeName strips any path components from a client-supplied filename,
// keeping the extension.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	if name == "." || name == "/" || name == "" {
		return "file"
	}

	return name
}
