package port

import "context"

// GenerationTask identifies which fixed prompt a generation call uses.
type GenerationTask string

const (
	// TaskUnderwrite produces the critical underwriting analysis from the
	// submitted document's extracted text.
	TaskUnderwrite GenerationTask = "underwrite"
	// TaskKIQ produces the key investor questions from the underwrite
	// analysis text.
	TaskKIQ GenerationTask = "kiq"
)

// GenerationResult is the outcome of one generation call. Text is always
// non-empty: adapters substitute the task's failure placeholder on any
// transport error, non-success status, or malformed response, and mark the
// result Degraded.
type GenerationResult struct {
	Text     string
	Degraded bool
}

// TextGenerator abstracts the language-model provider. Generate never fails:
// the pipeline is an unconditional producer of documents, so remote failures
// surface as a Degraded placeholder result rather than an error.
type TextGenerator interface {
	Generate(ctx context.Context, task GenerationTask, input string) GenerationResult
}
