package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopregistry/coopregistry-api/internal/models"
)

func TestIsValidContentType(t *testing.T) {
	tests := []struct {
		name        string
		kind        string
		contentType string
		want        bool
	}{
		{"certificate pdf", models.DocumentKindRegistrationCertificate, "application/pdf", true},
		{"certificate scan", models.DocumentKindRegistrationCertificate, "image/png", true},
		{"bylaws pdf", models.DocumentKindBylaws, "application/pdf", true},
		{"bylaws rejects scans", models.DocumentKindBylaws, "image/jpeg", false},
		{"additional jpeg", models.DocumentKindAdditional, "image/jpeg", true},
		{"executable rejected", models.DocumentKindAdditional, "application/octet-stream", false},
		{"unknown kind", "passport", "application/pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidContentType(tt.kind, tt.contentType))
		})
	}
}

func TestLocalStorage_UploadDownloadDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	content := []byte("%PDF-1.4 statutes")
	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("bylaws", "statutes.pdf")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(buf, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	defer form.RemoveAll()

	header := form.File["bylaws"][0]
	file, err := header.Open()
	require.NoError(t, err)
	defer file.Close()

	relPath, err := store.Upload(file, header, "documents")
	require.NoError(t, err)
	assert.True(t, store.Exists(relPath))
	assert.Equal(t, ".pdf", relPath[len(relPath)-4:])

	stored, err := store.Download(relPath)
	require.NoError(t, err)
	got, err := io.ReadAll(stored)
	stored.Close()
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, store.Delete(relPath))
	assert.False(t, store.Exists(relPath))
}

func TestNewLocalStorage_CreatesBaseDir(t *testing.T) {
	base := t.TempDir() + "/nested/uploads"
	_, err := NewLocalStorage(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
