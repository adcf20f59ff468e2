package storage

import (
	"context"
	"io"
)

// FileStorage stores uploaded attachments, currently sick leave certificates.
type FileStorage interface {
	// Upload stores a file and returns its path relative to the storage root.
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Download opens a stored file for reading.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for a stored file.
	URL(path string) string

	// Exists reports whether a file is present.
	Exists(ctx context.Context, path string) (bool, error)
}
