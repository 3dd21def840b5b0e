package errors

import "github.com/pkg/errors"

var (
	// common errors
	ErrConnectionTimeout = errors.New("connection timeout")

	// ticket errors
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrMissingStatus      = errors.New("status is required")
	ErrMissingMessage     = errors.New("message is required")
	ErrMissingSubject     = errors.New("subject is required")
	ErrInvalidEmail       = errors.New("invalid customer email")
)
