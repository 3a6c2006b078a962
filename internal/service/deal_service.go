package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"dealflow/internal/config"
	"dealflow/internal/domain"
	"dealflow/internal/generator"
	"dealflow/internal/port"
)

// DealService defines the submission processing contract.
type DealService interface {
	// Process runs the full pipeline for one submission: duplicate check,
	// structure creation, upload, extraction, the two chained generation
	// calls, document creation, and notification fan-out. It returns a
	// duplicate-flagged result without error when the project already
	// exists, and a PipelineError naming the failing stage on any
	// unrecoverable collaborator failure.
	Process(ctx context.Context, sub *domain.DealSubmission, documentPath string) (*domain.ProcessingResult, error)
}

type dealService struct {
	store     port.DocumentStore
	generator port.TextGenerator
	mail      port.EmailSender
	docCfg    *config.DocStoreConfig
	company   *config.CompanyConfig
	notify    config.NotifyConfig
}

// NewDealService creates a new DealService implementation.
func NewDealService(
	store port.DocumentStore,
	gen port.TextGenerator,
	mail port.EmailSender,
	docCfg *config.DocStoreConfig,
	company *config.CompanyConfig,
	notify config.NotifyConfig,
) DealService {
	return &dealService{
		store:     store,
		generator: gen,
		mail:      mail,
		docCfg:    docCfg,
		company:   company,
		notify:    notify,
	}
}

// Process is strictly sequential: every step's input depends on the previous
// step's output, and no step is retried or rolled back here. The duplicate
// check is a best-effort point check, not a transactional guarantee: two
// submissions for the same project arriving concurrently can both pass it.
func (s *dealService) Process(ctx context.Context, sub *domain.DealSubmission, documentPath string) (*domain.ProcessingResult, error) {
	log.Printf("dealService.Process: processing submission for %q from %s", sub.ProjectName, sub.Email)

	// Duplicate check. A failure of the check itself degrades to "not a
	// duplicate": completing processing beats blocking on a diagnostic call.
	if s.isDuplicate(ctx, sub) {
		log.Printf("dealService.Process: duplicate detected for %q", sub.ProjectName)
		s.send(ctx, sub.Email, duplicateSubject(s.company), duplicateBody(s.company, sub))
		return &domain.ProcessingResult{DuplicateDetected: true}, nil
	}

	// Structure creation. No cleanup on failure: orphaned folders from an
	// aborted run are an accepted cost, removed manually.
	projectName := fmt.Sprintf("%s - %s", sub.Email, sub.ProjectName)
	projectFolderID, err := s.store.CreateFolder(ctx, s.docCfg.BaseFolderID, projectName)
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageStructure, fmt.Errorf("creating project folder: %w", err))
	}
	preFolderID, err := s.store.CreateFolder(ctx, projectFolderID, domain.PreUnderwriteFolderName)
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageStructure, fmt.Errorf("creating pre-underwrite folder: %w", err))
	}
	kiqFolderID, err := s.store.CreateFolder(ctx, projectFolderID, domain.KIQFolderName)
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageStructure, fmt.Errorf("creating KIQ folder: %w", err))
	}
	log.Printf("dealService.Process: created project structure for %q", sub.ProjectName)

	// Original upload. Word-processor formats are converted to the store's
	// native document format so text extraction has an export path.
	uploadedID, err := s.store.UploadFile(ctx, port.UploadFileInput{
		Path:     documentPath,
		ParentID: preFolderID,
		Name:     fmt.Sprintf("%s - %s - Original", sub.Email, sub.ProjectName),
		Convert:  isWordDocument(documentPath),
	})
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageUpload, fmt.Errorf("uploading original document: %w", err))
	}

	// Text extraction. Unavailability substitutes a sentinel; generation
	// tolerates degraded input.
	documentText, err := s.store.ExtractPlainText(ctx, uploadedID)
	if err != nil {
		log.Printf("dealService.Process: text extraction failed for %s: %v", uploadedID, err)
		documentText = domain.ExtractionUnavailableText
	}

	// First-stage generation. The generator substitutes a placeholder on
	// failure, so a document is always produced at this slot.
	log.Printf("dealService.Process: generating underwriting analysis for %q", sub.ProjectName)
	analysis := s.generator.Generate(ctx, port.TaskUnderwrite, documentText)
	if analysis.Degraded {
		log.Printf("dealService.Process: underwrite generation degraded for %q", sub.ProjectName)
	}

	underwriteTitle := fmt.Sprintf("%s - %s - %s Underwrite", sub.Email, sub.ProjectName, s.company.Name)
	underwriteDocID, err := s.store.CreateTextDocument(ctx, preFolderID, underwriteTitle, analysis.Text)
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageCreateUnderwriteDoc, fmt.Errorf("creating underwrite document: %w", err))
	}

	// Second-stage generation consumes the analysis text, not the original
	// document. Composition enforces the fixed worksheet shape.
	log.Printf("dealService.Process: generating KIQ questions for %q", sub.ProjectName)
	kiq := s.generator.Generate(ctx, port.TaskKIQ, analysis.Text)
	if kiq.Degraded {
		log.Printf("dealService.Process: KIQ generation degraded for %q", sub.ProjectName)
	}
	kiqBody := generator.ComposeKIQ(kiq.Text)

	kiqTitle := fmt.Sprintf("%s - %s - KIQ_1", sub.Email, sub.ProjectName)
	kiqDocID, err := s.store.CreateTextDocument(ctx, kiqFolderID, kiqTitle, kiqBody)
	if err != nil {
		return nil, domain.NewPipelineError(domain.StageCreateKIQDoc, fmt.Errorf("creating KIQ document: %w", err))
	}

	projectLink := FolderLink(projectFolderID)
	underwriteLink := DocumentLink(underwriteDocID)
	kiqLink := DocumentLink(kiqDocID)

	// Notification dispatch is best-effort: a send failure never invalidates
	// the processing result.
	s.send(ctx, sub.Email, clientSubject(s.company), clientBody(s.company, sub, underwriteLink, kiqLink))
	for _, addr := range s.notify.InternalAddresses {
		s.send(ctx, addr, internalSubject, internalBody(sub, projectLink, underwriteLink, kiqLink))
	}

	log.Printf("dealService.Process: successfully processed submission for %q", sub.ProjectName)

	return &domain.ProcessingResult{
		ProjectFolderID: projectFolderID,
		UnderwriteDocID: underwriteDocID,
		KIQDocID:        kiqDocID,
	}, nil
}

func (s *dealService) isDuplicate(ctx context.Context, sub *domain.DealSubmission) bool {
	key := domain.SearchKey(sub.Email, sub.ProjectName)
	matches, err := s.store.FindByNameContaining(ctx, s.docCfg.BaseFolderID, key)
	if err != nil {
		log.Printf("dealService.Process: duplicate check failed, assuming new project: %v", err)
		return false
	}
	return len(matches) > 0
}

func (s *dealService) send(ctx context.Context, to, subject, body string) {
	if err := s.mail.Send(ctx, to, subject, body); err != nil {
		log.Printf("dealService.Process: failed to send %q to %s: %v", subject, to, err)
	}
}

// isWordDocument reports whether path names a word-processor file that
// should be converted on upload.
func isWordDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".doc", ".docx":
		return true
	}
	return false
}
