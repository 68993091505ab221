package storage

import (
	"context"
	"io"
)

// Storage defines the interface for document storage operations.
// It is used to archive generated artifacts such as invoice PDFs.
type Storage interface {
	// Save saves a document to the storage.
	// path is the relative path where the document should be stored.
	// content is the document content.
	// Returns the error if any.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get retrieves a document from the storage.
	// path is the relative path of the document.
	// Returns a ReadCloser for the content, or error.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a document from the storage.
	// path is the relative path of the document to delete.
	// Returns error if any.
	Delete(ctx context.Context, path string) error
}
