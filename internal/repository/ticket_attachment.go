package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/models"
	"github.com/customeros/mailtickets/internal/tracing"
	"github.com/customeros/mailtickets/internal/utils"
)

type ticketAttachmentRepository struct {
	db      *gorm.DB
	storage interfaces.StorageService
}

func NewTicketAttachmentRepository(db *gorm.DB, storageService interfaces.StorageService) interfaces.TicketAttachmentRepository {
	return &ticketAttachmentRepository{
		db:      db,
		storage: storageService,
	}
}

// Store uploads the bytes to object storage and records the metadata row.
func (r *ticketAttachmentRepository) Store(ctx context.Context, ticketID uint64, filename, contentType string, data []byte) (*models.TicketAttachment, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketAttachmentRepository.Store")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, ticketID)

	if ticketID == 0 || filename == "" {
		return nil, ErrInvalidInput
	}

	hash := sha256.Sum256(data)
	attachment := &models.TicketAttachment{
		ID:            utils.GenerateNanoIDWithPrefix("file", 12),
		TicketID:      ticketID,
		Filename:      filename,
		ContentType:   contentType,
		Size:          len(data),
		StorageBucket: r.storage.Bucket(),
		ContentHash:   hex.EncodeToString(hash[:]),
	}
	attachment.StorageKey = fmt.Sprintf("tickets/%d/%s/%s", ticketID, attachment.ID, filename)

	if err := r.storage.Upload(ctx, attachment.StorageKey, data, contentType); err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to upload attachment")
	}

	if err := r.db.WithContext(ctx).Create(attachment).Error; err != nil {
		tracing.TraceErr(span, err)
		if delErr := r.storage.Delete(ctx, attachment.StorageKey); delErr != nil {
			tracing.TraceErr(span, delErr)
		}
		return nil, errors.Wrap(err, "failed to save attachment")
	}

	return attachment, nil
}

func (r *ticketAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint64) ([]*models.TicketAttachment, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketAttachmentRepository.ListByTicket")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, ticketID)

	var attachments []*models.TicketAttachment
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&attachments).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "list ticket attachments")
	}
	return attachments, nil
}

// GetByID returns nil without error when the attachment does not belong to the ticket
func (r *ticketAttachmentRepository) GetByID(ctx context.Context, ticketID uint64, id string) (*models.TicketAttachment, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketAttachmentRepository.GetByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag(tracing.SpanTagEntityId, id)

	var attachment models.TicketAttachment
	err := r.db.WithContext(ctx).
		Where("id = ? AND ticket_id = ?", id, ticketID).
		First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "get ticket attachment")
	}
	return &attachment, nil
}

func (r *ticketAttachmentRepository) Download(ctx context.Context, attachment *models.TicketAttachment) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ticketAttachmentRepository.Download")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if attachment == nil || attachment.StorageKey == "" {
		return nil, ErrInvalidInput
	}
	span.SetTag(tracing.SpanTagEntityId, attachment.ID)

	data, err := r.storage.Download(ctx, attachment.StorageKey)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to download attachment")
	}
	return data, nil
}
