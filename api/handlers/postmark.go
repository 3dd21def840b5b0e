package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	api_errors "github.com/customeros/mailtickets/api/errors"
	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/tracing"
	"github.com/customeros/mailtickets/services/email_processor"
)

// maxInboundBodyBytes caps the webhook body. Postmark limits inbound messages
// to 35 MB before JSON and base64 encoding.
const maxInboundBodyBytes int64 = 50 << 20

type inboundIngester interface {
	Ingest(ctx context.Context, msg *dto.EmailMessage) (email_processor.IngestResult, error)
}

type WebhookHandler struct {
	provider  interfaces.EmailProvider
	processor    inboundIngester
	log          logger.Logger
	maxBodyBytes int64
}

func NewWebhookHandler(provider interfaces.EmailProvider, processor inboundIngester, log logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		provider:     provider,
		processor:    processor,
		log:          log,
		maxBodyBytes: maxInboundBodyBytes,
	}
}

// Inbound accepts a Postmark inbound webhook. Every parsed payload is
// acknowledged with 200 so the provider does not retry; only a body that is
// not JSON is rejected.
func (h *WebhookHandler) Inbound() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "WebhookHandler.Inbound")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagComponentWebhook(span)

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
		payload, err := c.GetRawData()
		if err != nil {
			tracing.TraceErr(span, err)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				api_errors.Abort(c, http.StatusRequestEntityTooLarge, api_errors.CodePayloadTooLarge, "request body too large")
				return
			}
			api_errors.BadRequest(c, api_errors.CodeInvalidRequest, "unable to read request body")
			return
		}

		msg, err := h.provider.ParseIncoming(payload)
		if err != nil {
			tracing.TraceErr(span, err)
			api_errors.BadRequest(c, api_errors.CodeInvalidRequest, "Invalid JSON payload")
			return
		}

		result, err := h.processor.Ingest(ctx, msg)
		if err != nil {
			tracing.TraceErr(span, err)
			h.log.Errorf("failed to ingest inbound email %s: %v", msg.MessageID, err)
			c.JSON(http.StatusOK, gin.H{"success": true, "skipped": email_processor.SkippedReplyFailed})
			return
		}

		switch {
		case result.Skipped != "":
			c.JSON(http.StatusOK, gin.H{"success": true, "skipped": result.Skipped})
		case result.ReplyAdded:
			c.JSON(http.StatusOK, gin.H{"success": true, "reply_added": true, "ticket_id": result.TicketID})
		default:
			c.JSON(http.StatusOK, gin.H{"success": true, "ticket_id": result.TicketID})
		}
	}
}
