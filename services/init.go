package services

import (
	"io"

	"github.com/customeros/mailtickets/config"
	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/metrics"
	"github.com/customeros/mailtickets/internal/repository"
	"github.com/customeros/mailtickets/services/attachments"
	"github.com/customeros/mailtickets/services/dedup"
	"github.com/customeros/mailtickets/services/email_processor"
	"github.com/customeros/mailtickets/services/notification"
	"github.com/customeros/mailtickets/services/postmark"
	"github.com/customeros/mailtickets/services/tickets"
)

type Services struct {
	EmailProvider       interfaces.EmailProvider
	Deduplicator        interfaces.MessageDeduplicator
	NotificationService *notification.Service
	EmailProcessor      *email_processor.Processor
	TicketService       *tickets.Service
}

func InitServices(
	cfg *config.Config,
	log logger.Logger,
	repos *repository.Repositories,
	storage interfaces.StorageService,
	m *metrics.Metrics,
) (*Services, error) {
	deduplicator, err := dedup.NewFromConfig(cfg.RedisConfig, log)
	if err != nil {
		return nil, err
	}

	provider := postmark.NewProvider(cfg.SMTPConfig, cfg.AppConfig, log)
	notifications := notification.NewService(provider, log, m)

	return &Services{
		EmailProvider:       provider,
		Deduplicator:        deduplicator,
		NotificationService: notifications,
		EmailProcessor: email_processor.NewProcessor(
			repos,
			attachments.NewProcessor(log, m),
			deduplicator,
			log,
			m,
		),
		TicketService: tickets.NewService(repos, storage, notifications, cfg.AppConfig.PublicURL, log),
	}, nil
}

// Close releases the Redis connection held by the deduplicator, if any.
func (s *Services) Close() error {
	if closer, ok := s.Deduplicator.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
