package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField        = errors.New("submission is missing a required field")
	ErrUnsupportedFileType = errors.New("unsupported document file type")
	ErrDocumentUnavailable = errors.New("submission document could not be retrieved")
)

// Stage identifies which step of the submission pipeline failed.
type Stage string

const (
	StageDuplicateCheck       Stage = "duplicate_check"
	StageStructure            Stage = "structure"
	StageUpload               Stage = "upload"
	StageExtract              Stage = "extract"
	StageGenerateUnderwrite   Stage = "generate_underwrite"
	StageCreateUnderwriteDoc  Stage = "create_underwrite_doc"
	StageGenerateKIQ          Stage = "generate_kiq"
	StageCreateKIQDoc         Stage = "create_kiq_doc"
	StageNotify               Stage = "notify"
)

// PipelineError wraps an unrecoverable collaborator failure with the identity
// of the pipeline stage that hit it. Degraded paths (generation, extraction)
// never produce one; only structure creation, upload, and document creation do.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError wraps err with the failing stage.
func NewPipelineError(stage Stage, err error) *PipelineError {
	return &PipelineError{Stage: stage, Err: err}
}

// PipelineStage reports the failing stage of err, if err is a PipelineError.
func PipelineStage(err error) (Stage, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage, true
	}
	return "", false
}
