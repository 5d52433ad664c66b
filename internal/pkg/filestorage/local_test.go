package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["image"][0]
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	path, err := storage.SaveFile(uploadedFile(t, "photo.png", "fake png bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	data, err := os.ReadFile(storage.GetFullPath(path))
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(data))
}

func TestSaveFileNilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	path, err := storage.SaveFile(nil)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestSaveFileUniqueNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	first, err := storage.SaveFile(uploadedFile(t, "a.png", "one"))
	require.NoError(t, err)
	second, err := storage.SaveFile(uploadedFile(t, "a.png", "two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	path, err := storage.SaveFile(uploadedFile(t, "photo.png", "bytes"))
	require.NoError(t, err)
	physical := storage.GetFullPath(path)

	require.NoError(t, storage.DeleteFile(path))
	_, err = os.Stat(physical)
	assert.True(t, os.IsNotExist(err))

	t.Run("deleting a missing file is not an error", func(t *testing.T) {
		assert.NoError(t, storage.DeleteFile(path))
	})

	t.Run("empty path is ignored", func(t *testing.T) {
		assert.NoError(t, storage.DeleteFile(""))
	})
}

func TestGetFullPath(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "a.png"),
		storage.GetFullPath("http://localhost:8080/uploads/a.png"))
}
