package port

import "context"

// EmailSender defines the contract for sending a single message. Delivery is
// best-effort at the call sites: the pipeline logs and swallows send
// failures, they never invalidate a processing result.
type EmailSender interface {
	Send(ctx context.Context, toAddress, subject, body string) error
}
