package interfaces

import (
	"context"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/internal/enum"
	"github.com/customeros/mailtickets/internal/models"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id uint64) (*models.Ticket, error)
	List(ctx context.Context, filter dto.TicketListFilter) ([]*models.Ticket, int64, error)
	SetStatus(ctx context.Context, id uint64, status string) error
	GetStatus(ctx context.Context, id uint64) (string, error)
}

type TicketCommentRepository interface {
	Create(ctx context.Context, comment *models.TicketComment) error
	ListByTicket(ctx context.Context, ticketID uint64) ([]*models.TicketComment, error)
}

type TicketAttachmentRepository interface {
	Store(ctx context.Context, ticketID uint64, filename, contentType string, data []byte) (*models.TicketAttachment, error)
	ListByTicket(ctx context.Context, ticketID uint64) ([]*models.TicketAttachment, error)
	GetByID(ctx context.Context, ticketID uint64, id string) (*models.TicketAttachment, error)
	Download(ctx context.Context, attachment *models.TicketAttachment) ([]byte, error)
}

type TermRepository interface {
	EnsureTerm(ctx context.Context, taxonomy enum.Taxonomy, name string) error
	SeedDefaults(ctx context.Context) error
	ListByTaxonomy(ctx context.Context, taxonomy enum.Taxonomy) ([]*models.TicketTerm, error)
}
