package email_processor

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/metrics"
	"github.com/customeros/mailtickets/internal/repository"
	"github.com/customeros/mailtickets/internal/tracing"
	"github.com/customeros/mailtickets/services/attachments"
)

const (
	SkippedInvalidEmail   = "invalid_email"
	SkippedDuplicate      = "duplicate"
	SkippedCreationFailed = "creation_failed"
	SkippedReplyFailed    = "reply_failed"
)

const (
	outcomeTicketCreated = "ticket_created"
	outcomeReplyAdded    = "reply_added"
)

// IngestResult is the outcome of one inbound email. Exactly one of
// ReplyAdded, a non-zero TicketID alone, or Skipped describes it.
type IngestResult struct {
	ReplyAdded bool
	TicketID   uint64
	Skipped    string
}

type Processor struct {
	repositories *repository.Repositories
	attachments  *attachments.Processor
	dedup        interfaces.MessageDeduplicator
	log          logger.Logger
	metrics      *metrics.Metrics
}

func NewProcessor(
	repositories *repository.Repositories,
	attachmentProcessor *attachments.Processor,
	dedup interfaces.MessageDeduplicator,
	log logger.Logger,
	m *metrics.Metrics,
) *Processor {
	return &Processor{
		repositories: repositories,
		attachments:  attachmentProcessor,
		dedup:        dedup,
		log:          log,
		metrics:      m,
	}
}

// Ingest validates an inbound email and either appends it to the ticket it
// references or opens a new ticket. Only a failure to store a reply is
// returned as an error; every other outcome is reported in IngestResult.
func (p *Processor) Ingest(ctx context.Context, msg *dto.EmailMessage) (IngestResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailProcessor.Ingest")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if ok, reason := Validate(msg); !ok {
		span.LogKV("skipped", SkippedInvalidEmail, "reason", reason)
		p.log.Infof("skipping inbound email: %s", reason)
		return p.skip(SkippedInvalidEmail), nil
	}
	span.SetTag("email.from", msg.From)
	span.SetTag("email.is_reply", msg.IsReply)

	if p.dedup != nil && !p.dedup.FirstSeen(ctx, msg.MessageID) {
		span.LogKV("skipped", SkippedDuplicate)
		p.log.Infof("skipping duplicate inbound email %s", msg.MessageID)
		return p.skip(SkippedDuplicate), nil
	}

	if msg.IsReply && msg.TicketID != nil {
		result, handled, err := p.addReply(ctx, msg)
		if err != nil {
			tracing.TraceErr(span, err)
			p.forget(ctx, msg)
			p.metrics.IngestOutcome(SkippedReplyFailed)
			return IngestResult{}, err
		}
		if handled {
			p.metrics.IngestOutcome(outcomeReplyAdded)
			return result, nil
		}
		p.log.Infof("ticket %d referenced by inbound email not found, creating a new ticket", *msg.TicketID)
	}

	result := p.createTicket(ctx, msg)
	if result.Skipped == SkippedCreationFailed {
		p.forget(ctx, msg)
	}
	return result, nil
}

// forget lets a provider retry of a failed delivery through the dedup check.
func (p *Processor) forget(ctx context.Context, msg *dto.EmailMessage) {
	if p.dedup != nil {
		p.dedup.Forget(ctx, msg.MessageID)
	}
}

func (p *Processor) skip(reason string) IngestResult {
	p.metrics.IngestOutcome(reason)
	return IngestResult{Skipped: reason}
}
