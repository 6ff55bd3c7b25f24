package filestore_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BlufyTeam/contacts/internal/entity"
	"github.com/BlufyTeam/contacts/internal/filestore"
)

func TestStore_SaveWithinLimit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := filestore.New(dir, "/uploads/it_files", 64)
	require.NoError(t, err)

	payload := []byte("hello, upload")

	url, err := store.Save("report.pdf", bytes.NewReader(payload))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/it_files/"))
	require.True(t, strings.HasSuffix(url, "-report.pdf"))

	name := url[strings.LastIndex(url, "/")+1:]

	got, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Equal(t, payload, got)

	require.True(t, store.Exists(url))
}

func TestStore_SaveExactLimit(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("a"), 64)

	store, err := filestore.New(t.TempDir(), "/uploads/it_files", 64)
	require.NoError(t, err)

	url, err := store.Save("cap.bin", bytes.NewReader(payload))
	require.NoError(t, err)
	require.True(t, store.Exists(url))
}

func TestStore_SaveTooLarge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := filestore.New(dir, "/uploads/it_files", 64)
	require.NoError(t, err)

	payload := bytes.Repeat([]byte("a"), 65)

	_, err = store.Save("big.bin", bytes.NewReader(payload))
	require.ErrorIs(t, err, entity.ErrFileTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "no partial file may remain after a rejected upload")
}

func TestStore_SaveSanitizesName(t *testing.T) {
	t.Parallel()

	store, err := filestore.New(t.TempDir(), "/uploads/it_files", 1024)
	require.NoError(t, err)

	url, err := store.Save("../../etc/passwd", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(url, "-passwd"))
	require.True(t, strings.HasPrefix(url, "/uploads/it_files/"))
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	store, err := filestore.New(t.TempDir(), "/uploads/it_files", 1024)
	require.NoError(t, err)

	url, err := store.Save("doc.txt", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(url))
	require.False(t, store.Exists(url))

	// Removing a file that is already gone must not fail.
	require.NoError(t, store.Remove(url))
}

func TestStore_RemoveOutsideRoot(t *testing.T) {
	t.Parallel()

	store, err := filestore.New(t.TempDir(), "/uploads/it_files", 1024)
	require.NoError(t, err)

	err = store.Remove("/somewhere/else/file.txt")
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}
