package email_processor

import (
	"strings"
	"unicode/utf8"

	"github.com/customeros/mailsherpa/mailvalidate"

	"github.com/customeros/mailtickets/dto"
)

const MaxBodyLength = 50000

const (
	InvalidReasonMissingSubject = "missing_subject"
	InvalidReasonMissingFrom    = "missing_from"
	InvalidReasonMissingBody    = "missing_body"
	InvalidReasonInvalidFrom    = "invalid_from"
	InvalidReasonBodyTooLong    = "body_too_long"
)

// Validate reports whether an inbound message may become a ticket or reply,
// and if not, why.
func Validate(msg *dto.EmailMessage) (bool, string) {
	if msg == nil {
		return false, InvalidReasonMissingFrom
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return false, InvalidReasonMissingSubject
	}
	if strings.TrimSpace(msg.From) == "" {
		return false, InvalidReasonMissingFrom
	}
	if strings.TrimSpace(msg.Body) == "" {
		return false, InvalidReasonMissingBody
	}
	if !IsValidEmail(msg.From) {
		return false, InvalidReasonInvalidFrom
	}
	if utf8.RuneCountInString(msg.Body) > MaxBodyLength {
		return false, InvalidReasonBodyTooLong
	}
	return true, ""
}

func IsValidEmail(email string) bool {
	return mailvalidate.ValidateEmailSyntax(strings.TrimSpace(email)).IsValid
}
