package repository

import (
	"context"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/interfaces"
	internalerrors "github.com/customeros/mailtickets/internal/errors"
	"github.com/customeros/mailtickets/internal/models"
	"github.com/customeros/mailtickets/internal/tracing"
	"github.com/customeros/mailtickets/internal/utils"
)

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) interfaces.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if ticket == nil {
		return ErrInvalidInput
	}

	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "create ticket")
	}
	span.SetTag(tracing.SpanTagEntityId, ticket.ID)
	return nil
}

// GetByID returns nil without error when the ticket does not exist
func (r *ticketRepository) GetByID(ctx context.Context, id uint64) (*models.Ticket, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketRepository.GetByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, id)

	var ticket models.Ticket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "get ticket")
	}
	return &ticket, nil
}

// List returns a page of tickets, newest first, and the total matching the filter
func (r *ticketRepository) List(ctx context.Context, filter dto.TicketListFilter) ([]*models.Ticket, int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketRepository.List")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "filter", filter)

	filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Ticket{})
	if filter.Status != "" {
		query = query.Where("LOWER(status) = ?", strings.ToLower(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(subject) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, 0, errors.Wrap(err, "count tickets")
	}

	var tickets []*models.Ticket
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.PerPage).
		Offset(filter.Offset()).
		Find(&tickets).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, 0, errors.Wrap(err, "list tickets")
	}

	return tickets, total, nil
}

func (r *ticketRepository) SetStatus(ctx context.Context, id uint64, status string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketRepository.SetStatus")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, id)
	span.SetTag("status", status)

	result := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": utils.Now(),
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return errors.Wrap(result.Error, "set ticket status")
	}
	if result.RowsAffected == 0 {
		return internalerrors.ErrTicketNotFound
	}
	return nil
}

func (r *ticketRepository) GetStatus(ctx context.Context, id uint64) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketRepository.GetStatus")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, id)

	var ticket models.Ticket
	err := r.db.WithContext(ctx).Select("status").Where("id = ?", id).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", internalerrors.ErrTicketNotFound
		}
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "get ticket status")
	}
	return ticket.Status, nil
}
