// Package mocks holds testify mocks of the repository and provider interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/internal/enum"
	"github.com/customeros/mailtickets/internal/models"
)

type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepository) GetByID(ctx context.Context, id uint64) (*models.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *TicketRepository) List(ctx context.Context, filter dto.TicketListFilter) ([]*models.Ticket, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Ticket), args.Get(1).(int64), args.Error(2)
}

func (m *TicketRepository) SetStatus(ctx context.Context, id uint64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *TicketRepository) GetStatus(ctx context.Context, id uint64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type TicketCommentRepository struct {
	mock.Mock
}

func (m *TicketCommentRepository) Create(ctx context.Context, comment *models.TicketComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *TicketCommentRepository) ListByTicket(ctx context.Context, ticketID uint64) ([]*models.TicketComment, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TicketComment), args.Error(1)
}

type TicketAttachmentRepository struct {
	mock.Mock
}

func (m *TicketAttachmentRepository) Store(ctx context.Context, ticketID uint64, filename, contentType string, data []byte) (*models.TicketAttachment, error) {
	args := m.Called(ctx, ticketID, filename, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketAttachment), args.Error(1)
}

func (m *TicketAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint64) ([]*models.TicketAttachment, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TicketAttachment), args.Error(1)
}

func (m *TicketAttachmentRepository) GetByID(ctx context.Context, ticketID uint64, id string) (*models.TicketAttachment, error) {
	args := m.Called(ctx, ticketID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketAttachment), args.Error(1)
}

func (m *TicketAttachmentRepository) Download(ctx context.Context, attachment *models.TicketAttachment) ([]byte, error) {
	args := m.Called(ctx, attachment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type TermRepository struct {
	mock.Mock
}

func (m *TermRepository) EnsureTerm(ctx context.Context, taxonomy enum.Taxonomy, name string) error {
	args := m.Called(ctx, taxonomy, name)
	return args.Error(0)
}

func (m *TermRepository) SeedDefaults(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *TermRepository) ListByTaxonomy(ctx context.Context, taxonomy enum.Taxonomy) ([]*models.TicketTerm, error) {
	args := m.Called(ctx, taxonomy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TicketTerm), args.Error(1)
}
