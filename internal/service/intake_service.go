package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"dealflow/internal/config"
	"dealflow/internal/domain"
	"dealflow/internal/port"
)

// Form-vendor field labels in the webhook answers mapping.
const (
	fieldEmail       = "Email"
	fieldFirstName   = "Name - First Name"
	fieldProjectName = "Project Name"
	fieldDocument    = "Please upload your document in PDF or .DOCX Format"
)

// WebhookPayload is the raw form-vendor submission envelope.
type WebhookPayload struct {
	SubmissionID string            `json:"submissionID"`
	CreatedAt    string            `json:"created_at"`
	Answers      map[string]string `json:"answers"`
}

// IntakeService adapts form-vendor webhook payloads into pipeline runs: it
// maps fields, resolves the uploaded document to a local file, optionally
// archives the raw bytes, and invokes the deal service.
type IntakeService interface {
	ProcessWebhook(ctx context.Context, payload *WebhookPayload) (*domain.ProcessingResult, error)
}

type intakeService struct {
	deals      DealService
	archive    port.ObjectStorage
	archiveCfg *config.ArchiveConfig
	httpClient *http.Client
}

// NewIntakeService creates a new IntakeService. archive may be nil when
// archival is disabled.
func NewIntakeService(
	deals DealService,
	archive port.ObjectStorage,
	archiveCfg *config.ArchiveConfig,
	webhookCfg *config.WebhookConfig,
) IntakeService {
	timeout := webhookCfg.DownloadTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &intakeService{
		deals:      deals,
		archive:    archive,
		archiveCfg: archiveCfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *intakeService) ProcessWebhook(ctx context.Context, payload *WebhookPayload) (*domain.ProcessingResult, error) {
	sub, err := mapSubmission(payload)
	if err != nil {
		return nil, err
	}

	documentPath, err := s.downloadDocument(ctx, sub.DocumentRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentUnavailable, err)
	}
	defer func() {
		if err := os.Remove(documentPath); err != nil {
			log.Printf("intakeService.ProcessWebhook: removing temp file %s: %v", documentPath, err)
		}
	}()

	s.archiveDocument(ctx, sub, documentPath)

	return s.deals.Process(ctx, sub, documentPath)
}

// mapSubmission translates the vendor's label-keyed answers into a
// DealSubmission. Email, project name, and the document reference are
// required; everything else is carried as-is.
func mapSubmission(payload *WebhookPayload) (*domain.DealSubmission, error) {
	sub := &domain.DealSubmission{
		Email:        strings.TrimSpace(payload.Answers[fieldEmail]),
		FirstName:    strings.TrimSpace(payload.Answers[fieldFirstName]),
		ProjectName:  strings.TrimSpace(payload.Answers[fieldProjectName]),
		DocumentRef:  strings.TrimSpace(payload.Answers[fieldDocument]),
		SubmissionID: payload.SubmissionID,
	}

	if ts, err := time.Parse(time.RFC3339, payload.CreatedAt); err == nil {
		sub.CreatedAt = &ts
	}

	var missing []string
	if sub.Email == "" {
		missing = append(missing, fieldEmail)
	}
	if sub.ProjectName == "" {
		missing = append(missing, fieldProjectName)
	}
	if sub.DocumentRef == "" {
		missing = append(missing, fieldDocument)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingField, strings.Join(missing, ", "))
	}

	return sub, nil
}

// downloadDocument fetches the vendor-hosted upload into a temp file,
// preserving the extension so the pipeline's conversion decision still
// works.
func (s *intakeService) downloadDocument(ctx context.Context, fileURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading document: status %d", resp.StatusCode)
	}

	ext := filepath.Ext(path.Base(req.URL.Path))
	f, err := os.CreateTemp("", "dealflow-*"+ext)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	return f.Name(), nil
}

// archiveDocument stores the raw upload in the archive bucket, keyed by
// submission id. Archival is best-effort; a failure is logged and the
// submission still processes.
func (s *intakeService) archiveDocument(ctx context.Context, sub *domain.DealSubmission, documentPath string) {
	if s.archive == nil || s.archiveCfg.Bucket == "" {
		return
	}

	f, err := os.Open(documentPath)
	if err != nil {
		log.Printf("intakeService.ProcessWebhook: opening %s for archive: %v", documentPath, err)
		return
	}
	defer func() { _ = f.Close() }()

	id := sub.SubmissionID
	if id == "" {
		id = uuid.New().String()
	}
	key := fmt.Sprintf("submissions/%s/%s", id, filepath.Base(documentPath))

	if _, err := s.archive.Upload(ctx, port.UploadInput{
		Bucket:      s.archiveCfg.Bucket,
		Key:         key,
		Body:        f,
		ContentType: "application/octet-stream",
	}); err != nil {
		log.Printf("intakeService.ProcessWebhook: archiving %s: %v", key, err)
		return
	}
	log.Printf("intakeService.ProcessWebhook: archived original document at %s", key)
}
