package domain

import "time"

// DealSubmission is the identity of one deal intake. It is constructed once
// per intake event (webhook or CLI) and never mutated afterwards.
type DealSubmission struct {
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	ProjectName  string     `json:"project_name"`
	DocumentRef  string     `json:"document_ref"`
	SubmissionID string     `json:"submission_id,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// ProcessingResult is the outcome of one pipeline run. When
// DuplicateDetected is true the three identifiers are empty: the run did no
// work, which is a terminal success, not an error.
type ProcessingResult struct {
	ProjectFolderID   string `json:"project_folder_id"`
	UnderwriteDocID   string `json:"underwrite_doc_id"`
	KIQDocID          string `json:"kiq_doc_id"`
	DuplicateDetected bool   `json:"duplicate_detected"`
}

// Folder names created under every project folder.
const (
	PreUnderwriteFolderName = "PRE-UNDERWRITE"
	KIQFolderName           = "KIQ SUBMISSIONS"
)

// Placeholder texts substituted on degraded paths. Downstream documents and
// emails always carry one of these instead of aborting the pipeline.
const (
	ExtractionUnavailableText = "Document text extraction failed"
	UnderwriteFailureText     = "Analysis generation failed - please review manually."
	KIQFailureText            = "Question generation failed - please create manually."
)
