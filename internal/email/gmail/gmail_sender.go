package gmail

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"dealflow/internal/port"
)

type gmailSender struct {
	service     *gmail.Service
	fromAddress string
	fromName    string
}

// NewGmailSender creates a Gmail-backed EmailSender. Messages are sent as
// the authenticated user; the credentials file must grant the gmail.send
// scope.
func NewGmailSender(ctx context.Context, credentialsFile, fromAddress, fromName string) (port.EmailSender, error) {
	svc, err := gmail.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gmail.GmailSendScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gmail service: %w", err)
	}
	return &gmailSender{
		service:     svc,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *gmailSender) Send(ctx context.Context, toAddress, subject, body string) error {
	raw := buildRawMessage(s.fromName, s.fromAddress, toAddress, subject, body)

	_, err := s.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send to %s: %w", toAddress, err)
	}
	return nil
}

// buildRawMessage assembles an RFC 822 message and encodes it the way the
// Gmail API expects (URL-safe base64).
func buildRawMessage(fromName, fromAddress, toAddress, subject, body string) string {
	from := fromAddress
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromAddress)
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		from, toAddress, subject, body)
	return base64.URLEncoding.EncodeToString([]byte(msg))
}
