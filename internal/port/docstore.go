package port

import "context"

// FileInfo describes one entry found in the document store.
type FileInfo struct {
	ID   string
	Name string
}

// UploadFileInput encapsulates the parameters for uploading a local file
// into the store.
type UploadFileInput struct {
	Path     string
	ParentID string
	Name     string
	// Convert requests conversion to the store's native rich-text document
	// format (set for word-processor uploads).
	Convert bool
}

// DocumentStore abstracts the hierarchical folder/document backend.
// Adapters own authentication and session lifecycle.
type DocumentStore interface {
	// FindByNameContaining lists entries under parentID whose name contains
	// substring.
	FindByNameContaining(ctx context.Context, parentID, substring string) ([]FileInfo, error)
	// CreateFolder creates a folder named name under parentID and returns
	// its identifier.
	CreateFolder(ctx context.Context, parentID, name string) (string, error)
	// CreateTextDocument creates a text document with the given title and
	// body inside folderID and returns its identifier.
	CreateTextDocument(ctx context.Context, folderID, title, body string) (string, error)
	// UploadFile uploads a local file and returns the stored file's
	// identifier.
	UploadFile(ctx context.Context, input UploadFileInput) (string, error)
	// ExtractPlainText returns a plain-text rendition of a stored file, or
	// an error when no plain-text export path exists.
	ExtractPlainText(ctx context.Context, fileID string) (string, error)
}
