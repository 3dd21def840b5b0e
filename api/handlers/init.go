package handlers

import (
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/services"
)

type APIHandlers struct {
	Webhook *WebhookHandler
	Tickets *TicketsHandler
}

func InitHandlers(s *services.Services, log logger.Logger) *APIHandlers {
	return &APIHandlers{
		Webhook: NewWebhookHandler(s.EmailProvider, s.EmailProcessor, log),
		Tickets: NewTicketsHandler(s.TicketService, log),
	}
}
