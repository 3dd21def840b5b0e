package interfaces

import (
	"context"

	"github.com/customeros/mailtickets/dto"
)

// EmailProvider is an inbound/outbound email service.
type EmailProvider interface {
	// ParseIncoming turns a raw webhook payload into an EmailMessage.
	// Only a malformed payload is an error.
	ParseIncoming(payload []byte) (*dto.EmailMessage, error)
	// SendNotification delivers a plain text email and reports success.
	SendNotification(ctx context.Context, to, subject, body string) bool
}
