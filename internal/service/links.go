package service

import "fmt"

// Link formats are part of the observable contract: they are embedded
// verbatim in outbound notification bodies.
const (
	folderLinkFormat   = "https://drive.google.com/drive/folders/%s"
	documentLinkFormat = "https://docs.google.com/document/d/%s"
)

// FolderLink builds the shareable link for a project folder id.
func FolderLink(folderID string) string {
	return fmt.Sprintf(folderLinkFormat, folderID)
}

// DocumentLink builds the shareable link for a document id.
func DocumentLink(documentID string) string {
	return fmt.Sprintf(documentLinkFormat, documentID)
}
