package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/models"
	"github.com/customeros/mailtickets/internal/tracing"
)

type ticketCommentRepository struct {
	db *gorm.DB
}

func NewTicketCommentRepository(db *gorm.DB) interfaces.TicketCommentRepository {
	return &ticketCommentRepository{db: db}
}

func (r *ticketCommentRepository) Create(ctx context.Context, comment *models.TicketComment) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketCommentRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if comment == nil || comment.TicketID == 0 {
		return ErrInvalidInput
	}
	span.SetTag(tracing.SpanTagEntityId, comment.TicketID)

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "create ticket comment")
	}
	return nil
}

// ListByTicket returns the comments of a ticket in chronological order
func (r *ticketCommentRepository) ListByTicket(ctx context.Context, ticketID uint64) ([]*models.TicketComment, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketCommentRepository.ListByTicket")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, ticketID)

	var comments []*models.TicketComment
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "list ticket comments")
	}
	return comments, nil
}
