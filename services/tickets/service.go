package tickets

import (
	"context"
	"fmt"
	"strings"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/enum"
	internalerrors "github.com/customeros/mailtickets/internal/errors"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/models"
	"github.com/customeros/mailtickets/internal/repository"
	"github.com/customeros/mailtickets/internal/tracing"
	"github.com/customeros/mailtickets/internal/utils"
	"github.com/customeros/mailtickets/services/notification"
)

type Service struct {
	repositories  *repository.Repositories
	storage       interfaces.StorageService
	notifications *notification.Service
	publicURL     string
	log           logger.Logger
}

func NewService(
	repositories *repository.Repositories,
	storage interfaces.StorageService,
	notifications *notification.Service,
	publicURL string,
	log logger.Logger,
) *Service {
	return &Service{
		repositories:  repositories,
		storage:       storage,
		notifications: notifications,
		publicURL:     strings.TrimRight(publicURL, "/"),
		log:           log,
	}
}

func (s *Service) SeedTerms(ctx context.Context) error {
	return s.repositories.TermRepository.SeedDefaults(ctx)
}

func (s *Service) List(ctx context.Context, filter dto.TicketListFilter) (*dto.TicketList, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TicketService.List")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	filter.Normalize()
	filter.Status = utils.SanitizeTextField(filter.Status)
	filter.Search = utils.SanitizeTextField(filter.Search)

	tickets, total, err := s.repositories.TicketRepository.List(ctx, filter)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	result := &dto.TicketList{
		Tickets: make([]dto.TicketSummary, 0, len(tickets)),
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}
	for _, ticket := range tickets {
		result.Tickets = append(result.Tickets, dto.TicketSummary{
			ID:        ticket.ID,
			Subject:   ticket.Subject,
			Status:    ticket.Status,
			Requester: ticket.CustomerEmail,
			Date:      ticket.CreatedAt.Format(dto.DateLayout),
		})
	}
	return result, nil
}

// Get returns the ticket with its attachments and full conversation. The
// opening message is the first conversation entry.
func (s *Service) Get(ctx context.Context, id uint64) (*dto.TicketDetail, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TicketService.Get")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, id)

	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	comments, err := s.repositories.TicketCommentRepository.ListByTicket(ctx, id)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	attachments, err := s.repositories.TicketAttachmentRepository.ListByTicket(ctx, id)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	detail := &dto.TicketDetail{
		ID:           ticket.ID,
		Subject:      ticket.Subject,
		Content:      ticket.Content,
		Status:       ticket.Status,
		Priority:     []string{},
		Requester:    ticket.CustomerEmail,
		Attachments:  make([]dto.AttachmentRef, 0, len(attachments)),
		Conversation: make([]dto.ConversationEntry, 0, len(comments)+1),
		Date:         ticket.CreatedAt.Format(dto.DateLayout),
	}
	if ticket.Priority != "" {
		detail.Priority = append(detail.Priority, ticket.Priority)
	}
	for _, a := range attachments {
		detail.Attachments = append(detail.Attachments, dto.AttachmentRef{
			ID:   a.ID,
			Name: a.Filename,
			URL:  s.attachmentURL(a),
		})
	}

	detail.Conversation = append(detail.Conversation, dto.ConversationEntry{
		Author:      utils.FirstNotEmpty(ticket.CustomerName, ticket.CustomerEmail),
		AuthorEmail: ticket.CustomerEmail,
		Content:     ticket.Content,
		Date:        ticket.CreatedAt.Format(dto.DateLayout),
	})
	for _, c := range comments {
		detail.Conversation = append(detail.Conversation, dto.ConversationEntry{
			Author:      c.Author,
			AuthorEmail: c.AuthorEmail,
			Content:     c.Content,
			Date:        c.CreatedAt.Format(dto.DateLayout),
		})
	}

	return detail, nil
}

// SetStatus moves the ticket to any status, registering unknown ones.
func (s *Service) SetStatus(ctx context.Context, id uint64, status string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TicketService.SetStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, id)

	if _, err := s.getTicket(ctx, id); err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	status = utils.SanitizeTextField(status)
	if status == "" {
		return "", internalerrors.ErrMissingStatus
	}

	if err := s.repositories.TermRepository.EnsureTerm(ctx, enum.TaxonomyTicketStatus, status); err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}
	if err := s.repositories.TicketRepository.SetStatus(ctx, id, status); err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	s.log.Infof("ticket %d status set to %s by %s", id, status, utils.GetUserIdFromContext(ctx))
	return status, nil
}

// Reply stores an agent reply and emails the customer. The ticket status is left unchanged.
func (s *Service) Reply(ctx context.Context, id uint64, message string, agent dto.Agent) (uint64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TicketService.Reply")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, id)

	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}

	message = utils.SanitizeTextareaField(message)
	if message == "" {
		return 0, internalerrors.ErrMissingMessage
	}

	comment := &models.TicketComment{
		TicketID: ticket.ID,
		Author:   utils.FirstNotEmpty(agent.Name, notification.DefaultAgentName),
		UserID:   agent.ID,
		Content:  message,
		Source:   enum.CommentSourceAgent.String(),
	}
	if err := s.repositories.TicketCommentRepository.Create(ctx, comment); err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}

	s.notifications.NotifyCustomerOfReply(ctx, ticket, message, agent.Name)

	return comment.ID, nil
}

func (s *Service) Create(ctx context.Context, input dto.CreateTicketInput) (*models.Ticket, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TicketService.Create")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	subject := utils.SanitizeTextField(input.Subject)
	if subject == "" {
		return nil, internalerrors.ErrMissingSubject
	}
	customerEmail := strings.TrimSpace(input.CustomerEmail)
	if !mailvalidate.ValidateEmailSyntax(customerEmail).IsValid {
		return nil, internalerrors.ErrInvalidEmail
	}

	ticket := &models.Ticket{
		Subject:       utils.Truncate(subject, models.TicketSubjectMaxLength),
		Content:       input.Content,
		CustomerEmail: customerEmail,
		CustomerName:  utils.SanitizeTextField(input.CustomerName),
		Status:        utils.FirstNotEmpty(utils.SanitizeTextField(input.Status), enum.TicketStatusOpen.String()),
		Priority:      utils.FirstNotEmpty(utils.SanitizeTextField(input.Priority), enum.TicketPriorityMedium.String()),
	}

	if err := s.repositories.TermRepository.EnsureTerm(ctx, enum.TaxonomyTicketStatus, ticket.Status); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if err := s.repositories.TermRepository.EnsureTerm(ctx, enum.TaxonomyTicketPriority, ticket.Priority); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if err := s.repositories.TicketRepository.Create(ctx, ticket); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	span.SetTag(tracing.SpanTagEntityId, ticket.ID)

	return ticket, nil
}

// GetAttachment returns the attachment metadata and its bytes.
func (s *Service) GetAttachment(ctx context.Context, ticketID uint64, attachmentID string) (*models.TicketAttachment, []byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TicketService.GetAttachment")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, attachmentID)

	attachment, err := s.repositories.TicketAttachmentRepository.GetByID(ctx, ticketID, attachmentID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, nil, err
	}
	if attachment == nil {
		return nil, nil, internalerrors.ErrAttachmentNotFound
	}

	data, err := s.repositories.TicketAttachmentRepository.Download(ctx, attachment)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, nil, err
	}
	return attachment, data, nil
}

func (s *Service) getTicket(ctx context.Context, id uint64) (*models.Ticket, error) {
	ticket, err := s.repositories.TicketRepository.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get ticket")
	}
	if ticket == nil {
		return nil, internalerrors.ErrTicketNotFound
	}
	return ticket, nil
}

func (s *Service) attachmentURL(a *models.TicketAttachment) string {
	if s.storage != nil {
		if url := s.storage.GetPublicURL(a.StorageKey); url != "" {
			return url
		}
	}
	return fmt.Sprintf("%s/ticketing/v1/ticket/%d/attachments/%s", s.publicURL, a.TicketID, a.ID)
}
