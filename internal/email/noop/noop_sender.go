package noop

import (
	"context"
	"log"

	"dealflow/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs outbound messages to
// stdout. Useful for development and for running the pipeline without a mail
// account.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) Send(_ context.Context, toAddress, subject, _ string) error {
	log.Printf("[NOOP EMAIL] to=%s subject=%q", toAddress, subject)
	return nil
}
