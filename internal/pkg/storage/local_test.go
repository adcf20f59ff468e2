package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return s
}

func TestUploadDownload(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	stored, err := s.Upload(ctx, strings.NewReader("certificate content"), "certificates/u1/cert.pdf")
	require.NoError(t, err)
	assert.Equal(t, "certificates/u1/cert.pdf", stored)

	exists, err := s.Exists(ctx, stored)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Download(ctx, stored)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "certificate content", string(content))
}

func TestDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	stored, err := s.Upload(ctx, strings.NewReader("x"), "certificates/u1/cert.pdf")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, stored))

	exists, err := s.Exists(ctx, stored)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error.
	assert.NoError(t, s.Delete(ctx, stored))
}

func TestUpload_RejectsTraversal(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Upload(context.Background(), strings.NewReader("x"), "../outside.txt")
	assert.Error(t, err)
}

func TestURL(t *testing.T) {
	s := newTestStorage(t)
	assert.Equal(t, "http://localhost:8080/uploads/certificates/u1/cert.pdf", s.URL("certificates/u1/cert.pdf"))
}
