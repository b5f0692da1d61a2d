package filestorage

import "mime/multipart"

// Storage defines the interface for storing uploaded files. Onboarding
// verification documents are the only callers today.
type Storage interface {
	// SaveDocument stores an uploaded verification document under the
	// documents subdirectory and returns its accessible path.
	SaveDocument(fileHeader *multipart.FileHeader) (string, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(filePath string) error

	// FullPath returns the filesystem path for a stored file path.
	FullPath(filePath string) string
}
