package gdrive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"dealflow/internal/config"
	"dealflow/internal/port"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	gdocMimeType   = "application/vnd.google-apps.document"
	docxMimeType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Store implements port.DocumentStore on Google Drive and Google Docs.
// It owns the authenticated API session; callers never see credentials.
type Store struct {
	drive *drive.Service
	docs  *docs.Service
}

// NewStore creates a Drive-backed DocumentStore from config. The credentials
// file must grant the Drive and Docs scopes.
func NewStore(ctx context.Context, cfg *config.DocStoreConfig) (*Store, error) {
	opts := []option.ClientOption{
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(drive.DriveScope, docs.DocumentsScope),
	}

	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	docsSvc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating docs service: %w", err)
	}

	return &Store{drive: driveSvc, docs: docsSvc}, nil
}

func (s *Store) FindByNameContaining(ctx context.Context, parentID, substring string) ([]port.FileInfo, error) {
	query := fmt.Sprintf("name contains '%s' and '%s' in parents and trashed = false",
		escapeQuery(substring), escapeQuery(parentID))

	list, err := s.drive.Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive files list: %w", err)
	}

	infos := make([]port.FileInfo, 0, len(list.Files))
	for _, f := range list.Files {
		infos = append(infos, port.FileInfo{ID: f.Id, Name: f.Name})
	}
	return infos, nil
}

func (s *Store) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	folder, err := s.drive.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("drive create folder %q: %w", name, err)
	}
	return folder.Id, nil
}

func (s *Store) CreateTextDocument(ctx context.Context, folderID, title, body string) (string, error) {
	doc, err := s.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("docs create %q: %w", title, err)
	}

	_, err = s.docs.Documents.BatchUpdate(doc.DocumentId, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: 1},
					Text:     body,
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("docs insert text into %q: %w", title, err)
	}

	// New documents land in the drive root; move into the project folder.
	_, err = s.drive.Files.Update(doc.DocumentId, nil).
		AddParents(folderID).
		RemoveParents("root").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive move document %q: %w", title, err)
	}

	return doc.DocumentId, nil
}

func (s *Store) UploadFile(ctx context.Context, input port.UploadFileInput) (string, error) {
	f, err := os.Open(input.Path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", input.Path, err)
	}
	defer func() { _ = f.Close() }()

	name := input.Name
	if name == "" {
		name = filepath.Base(input.Path)
	}

	meta := &drive.File{
		Name:    name,
		Parents: []string{input.ParentID},
	}

	var mediaOpts []googleapi.MediaOption
	if input.Convert {
		// Target mime type on the metadata requests server-side conversion
		// to a native Google Doc.
		meta.MimeType = gdocMimeType
		mediaOpts = append(mediaOpts, googleapi.ContentType(docxMimeType))
	}

	created, err := s.drive.Files.Create(meta).
		Media(f, mediaOpts...).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive upload %q: %w", name, err)
	}
	return created.Id, nil
}

func (s *Store) ExtractPlainText(ctx context.Context, fileID string) (string, error) {
	resp, err := s.drive.Files.Export(fileID, "text/plain").Context(ctx).Download()
	if err != nil {
		return "", fmt.Errorf("drive export %s as text: %w", fileID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading export body: %w", err)
	}

	return CleanText(string(raw)), nil
}

var (
	controlRe    = regexp.MustCompile(`[\n\r\t\\"]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText flattens an exported document into a single line of prompt-ready
// text: control characters and quotes become spaces, whitespace runs
// collapse.
func CleanText(s string) string {
	s = controlRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// escapeQuery escapes single quotes for embedding in a Drive query string.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, `'`, `\'`)
}
