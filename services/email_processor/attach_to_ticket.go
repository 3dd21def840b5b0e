package email_processor

import (
	"context"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/internal/enum"
	"github.com/customeros/mailtickets/internal/models"
	"github.com/customeros/mailtickets/internal/tracing"
	"github.com/customeros/mailtickets/internal/utils"
)

// addReply appends msg to the referenced ticket. handled is false when the
// ticket does not exist and the caller should fall back to creating one.
func (p *Processor) addReply(ctx context.Context, msg *dto.EmailMessage) (result IngestResult, handled bool, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailProcessor.addReply")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	ticketID := *msg.TicketID
	span.SetTag(tracing.SpanTagEntityId, ticketID)

	ticket, err := p.repositories.TicketRepository.GetByID(ctx, ticketID)
	if err != nil {
		tracing.TraceErr(span, err)
		return IngestResult{}, false, errors.Wrap(err, "lookup referenced ticket")
	}
	if ticket == nil {
		return IngestResult{}, false, nil
	}

	comment := &models.TicketComment{
		TicketID:    ticket.ID,
		Author:      utils.FirstNotEmpty(msg.FromName, msg.From),
		AuthorEmail: msg.From,
		Content:     msg.Body,
		Source:      enum.CommentSourceCustomer.String(),
	}
	if err := p.repositories.TicketCommentRepository.Create(ctx, comment); err != nil {
		tracing.TraceErr(span, err)
		return IngestResult{}, false, errors.Wrap(err, "append reply to ticket")
	}

	if strings.EqualFold(ticket.Status, enum.TicketStatusPending.String()) {
		err := p.repositories.TicketRepository.SetStatus(ctx, ticket.ID, enum.TicketStatusOpen.String())
		if err != nil {
			// the reply is already stored
			tracing.TraceErr(span, err)
			p.log.Errorf("failed to reopen ticket %d: %v", ticket.ID, err)
		}
	}

	return IngestResult{ReplyAdded: true, TicketID: ticket.ID}, true, nil
}

func (p *Processor) createTicket(ctx context.Context, msg *dto.EmailMessage) IngestResult {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailProcessor.createTicket")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	ticket := &models.Ticket{
		Subject:       utils.Truncate(msg.Subject, models.TicketSubjectMaxLength),
		Content:       msg.Body,
		CustomerEmail: msg.From,
		CustomerName:  msg.FromName,
		Status:        enum.TicketStatusOpen.String(),
		Priority:      enum.TicketPriorityMedium.String(),
	}
	if err := p.repositories.TicketRepository.Create(ctx, ticket); err != nil {
		tracing.TraceErr(span, err)
		p.log.Errorf("failed to create ticket from email %s: %v", msg.From, err)
		return p.skip(SkippedCreationFailed)
	}
	span.SetTag(tracing.SpanTagEntityId, ticket.ID)

	p.storeAttachments(ctx, ticket.ID, msg.Attachments)

	p.metrics.IngestOutcome(outcomeTicketCreated)
	return IngestResult{TicketID: ticket.ID}
}

// storeAttachments is best effort; a failing item never fails the ticket.
func (p *Processor) storeAttachments(ctx context.Context, ticketID uint64, raw []dto.RawAttachment) {
	if len(raw) == 0 {
		return
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailProcessor.storeAttachments")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	for _, attachment := range p.attachments.Process(raw) {
		_, err := p.repositories.TicketAttachmentRepository.Store(ctx, ticketID, attachment.Name, attachment.Type, attachment.Content)
		if err != nil {
			tracing.TraceErr(span, err)
			p.log.Warnf("failed to store attachment %s on ticket %d: %v", attachment.Name, ticketID, err)
			continue
		}
		p.metrics.AttachmentStored()
	}
}
