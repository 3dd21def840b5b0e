package attachments

import (
	"encoding/base64"
	"mime"
	"strings"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/metrics"
	"github.com/customeros/mailtickets/internal/utils"
)

const (
	MaxAttachments    = 10
	MaxAttachmentSize = 5 * 1024 * 1024
)

const (
	DropReasonEmpty        = "empty"
	DropReasonBadFilename  = "bad_filename"
	DropReasonUnknownType  = "unknown_type"
	DropReasonBadEncoding  = "bad_encoding"
	DropReasonTooLarge     = "too_large"
	DropReasonLimitReached = "limit_reached"
)

// Attachment is a decoded, validated attachment ready to be stored.
type Attachment struct {
	Name    string
	Content []byte
	Type    string
}

type Processor struct {
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewProcessor(log logger.Logger, m *metrics.Metrics) *Processor {
	return &Processor{log: log, metrics: m}
}

// Process turns raw provider attachments into storable ones. Only the first
// MaxAttachments descriptors are looked at; invalid items are dropped and
// the rest keep their original order.
func (p *Processor) Process(raw []dto.RawAttachment) []Attachment {
	if len(raw) > MaxAttachments {
		for range raw[MaxAttachments:] {
			p.metrics.AttachmentDropped(DropReasonLimitReached)
		}
		p.log.Debugf("only the first %d of %d attachments are processed", MaxAttachments, len(raw))
		raw = raw[:MaxAttachments]
	}

	result := make([]Attachment, 0, len(raw))
	for _, item := range raw {
		attachment, reason := p.processOne(item)
		if reason != "" {
			p.metrics.AttachmentDropped(reason)
			p.log.Debugf("dropping attachment %q: %s", item.Name, reason)
			continue
		}
		result = append(result, attachment)
	}
	return result
}

func (p *Processor) processOne(item dto.RawAttachment) (Attachment, string) {
	if item.Name == "" || item.Content == "" {
		return Attachment{}, DropReasonEmpty
	}

	filename := SanitizeFilename(item.Name)
	if filename == "" {
		return Attachment{}, DropReasonBadFilename
	}

	contentType, ok := utils.GetContentTypeFromFilename(filename)
	if !ok {
		return Attachment{}, DropReasonUnknownType
	}
	if provided, ok := providedContentType(item.ContentType, contentType); ok {
		contentType = provided
	}

	content, err := decodeBase64(item.Content)
	if err != nil {
		return Attachment{}, DropReasonBadEncoding
	}
	if len(content) > MaxAttachmentSize {
		return Attachment{}, DropReasonTooLarge
	}

	return Attachment{Name: filename, Content: content, Type: contentType}, ""
}

func decodeBase64(encoded string) ([]byte, error) {
	// providers may wrap base64 at 76 columns
	encoded = strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\t', ' ':
			return -1
		}
		return r
	}, encoded)

	content, err := base64.StdEncoding.DecodeString(encoded)
	if err == nil {
		return content, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
}

// providedContentType accepts the sender's declared type only when it is on
// the allow-list and keeps the major type resolved from the extension.
func providedContentType(provided, resolved string) (string, bool) {
	if strings.TrimSpace(provided) == "" {
		return "", false
	}
	mediaType, _, err := mime.ParseMediaType(provided)
	if err != nil || !utils.IsAllowedContentType(mediaType) {
		return "", false
	}
	if majorType(mediaType) != majorType(resolved) {
		return "", false
	}
	return mediaType, true
}

func majorType(contentType string) string {
	major, _, _ := strings.Cut(contentType, "/")
	return major
}
