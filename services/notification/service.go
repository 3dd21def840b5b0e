package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/opentracing/opentracing-go"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/metrics"
	"github.com/customeros/mailtickets/internal/models"
	"github.com/customeros/mailtickets/internal/tracing"
)

const DefaultAgentName = "Support Agent"

const replyBodyTemplate = "Hello,\n\nYou have a new reply to your ticket:\n\n%s\n\nBest regards,\n%s"

type Service struct {
	provider interfaces.EmailProvider
	log      logger.Logger
	metrics  *metrics.Metrics
}

func NewService(provider interfaces.EmailProvider, log logger.Logger, m *metrics.Metrics) *Service {
	return &Service{provider: provider, log: log, metrics: m}
}

// NotifyCustomerOfReply emails the ticket's customer about an agent reply.
// It reports whether a message was handed to the provider successfully.
func (s *Service) NotifyCustomerOfReply(ctx context.Context, ticket *models.Ticket, messageText, agentName string) bool {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NotificationService.NotifyCustomerOfReply")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if ticket == nil || strings.TrimSpace(ticket.CustomerEmail) == "" {
		span.LogKV("result", "no customer email")
		return false
	}
	tracing.TagEntity(span, fmt.Sprint(ticket.ID))

	subject, body := ReplyNotification(ticket, messageText, agentName)

	sent := s.provider.SendNotification(ctx, ticket.CustomerEmail, subject, body)
	s.metrics.Notification(sent)
	if !sent {
		s.log.Warnf("reply notification for ticket %d was not delivered", ticket.ID)
	}
	return sent
}

// ReplyNotification renders the subject and body of the customer email.
func ReplyNotification(ticket *models.Ticket, messageText, agentName string) (string, string) {
	if strings.TrimSpace(agentName) == "" {
		agentName = DefaultAgentName
	}
	subject := fmt.Sprintf("%s Your support ticket \"%s\" has a new reply", dto.TicketReference(ticket.ID), ticket.Subject)
	body := fmt.Sprintf(replyBodyTemplate, messageText, agentName)
	return subject, body
}
