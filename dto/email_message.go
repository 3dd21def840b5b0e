package dto

import (
	"regexp"
	"strconv"
)

var ticketReferenceRegex = regexp.MustCompile(`\[Ticket #(\d+)\]`)

// RawAttachment is an attachment as delivered by the provider, content still base64 encoded.
type RawAttachment struct {
	Name        string
	Content     string
	ContentType string
}

// EmailMessage is the provider independent form of an inbound email.
type EmailMessage struct {
	From        string
	FromName    string
	Subject     string
	Body        string
	MessageID   string
	Attachments []RawAttachment

	IsReply  bool
	TicketID *uint64
}

// ExtractTicketReference derives IsReply and TicketID from the subject.
// Running it more than once yields the same result.
func (m *EmailMessage) ExtractTicketReference() {
	m.IsReply = false
	m.TicketID = nil

	ticketID, ok := ParseTicketReference(m.Subject)
	if !ok {
		return
	}
	m.IsReply = true
	m.TicketID = &ticketID
}

// ParseTicketReference returns the id of the first "[Ticket #<id>]" marker in subject.
// Ids that are zero or do not fit in a uint64 are not references.
func ParseTicketReference(subject string) (uint64, bool) {
	match := ticketReferenceRegex.FindStringSubmatch(subject)
	if match == nil {
		return 0, false
	}
	ticketID, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil || ticketID == 0 {
		return 0, false
	}
	return ticketID, true
}

func TicketReference(ticketID uint64) string {
	return "[Ticket #" + strconv.FormatUint(ticketID, 10) + "]"
}
