package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	api_errors "github.com/customeros/mailtickets/api/errors"
	"github.com/customeros/mailtickets/dto"
	internalerrors "github.com/customeros/mailtickets/internal/errors"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/models"
	"github.com/customeros/mailtickets/internal/tracing"
	"github.com/customeros/mailtickets/internal/utils"
)

type ticketService interface {
	List(ctx context.Context, filter dto.TicketListFilter) (*dto.TicketList, error)
	Get(ctx context.Context, id uint64) (*dto.TicketDetail, error)
	SetStatus(ctx context.Context, id uint64, status string) (string, error)
	Reply(ctx context.Context, id uint64, message string, agent dto.Agent) (uint64, error)
	Create(ctx context.Context, input dto.CreateTicketInput) (*models.Ticket, error)
	GetAttachment(ctx context.Context, ticketID uint64, attachmentID string) (*models.TicketAttachment, []byte, error)
}

type TicketsHandler struct {
	tickets ticketService
	log     logger.Logger
}

func NewTicketsHandler(tickets ticketService, log logger.Logger) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, log: log}
}

type statusRequest struct {
	Status string `json:"status"`
}

type replyRequest struct {
	Message string `json:"message"`
}

func (h *TicketsHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "TicketsHandler.List")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		page, _ := strconv.Atoi(c.Query("page"))
		perPage, _ := strconv.Atoi(c.Query("per_page"))

		result, err := h.tickets.List(ctx, dto.TicketListFilter{
			Page:    page,
			PerPage: perPage,
			Status:  c.Query("status"),
			Search:  c.Query("search"),
		})
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (h *TicketsHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "TicketsHandler.Create")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var input dto.CreateTicketInput
		if err := c.ShouldBindJSON(&input); err != nil {
			tracing.TraceErr(span, err)
			api_errors.BadRequest(c, api_errors.CodeInvalidRequest, "Invalid JSON payload")
			return
		}

		if validationErrors := validateCreateInput(input); validationErrors.HasErrors() {
			api_errors.BadRequest(c, validationErrors.FirstCode("subject", "customer_email"), validationErrors.Error())
			return
		}

		ticket, err := h.tickets.Create(ctx, input)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "ticket_id": ticket.ID})
	}
}

func (h *TicketsHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "TicketsHandler.Get")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		id, ok := ticketIDParam(c)
		if !ok {
			return
		}

		detail, err := h.tickets.Get(ctx, id)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

func (h *TicketsHandler) SetStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "TicketsHandler.SetStatus")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		id, ok := ticketIDParam(c)
		if !ok {
			return
		}

		var req statusRequest
		if !bindOptionalJSON(c, span, &req) {
			return
		}

		status, err := h.tickets.SetStatus(ctx, id, req.Status)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "ticket_id": id, "status": status})
	}
}

func (h *TicketsHandler) Reply() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "TicketsHandler.Reply")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		id, ok := ticketIDParam(c)
		if !ok {
			return
		}

		var req replyRequest
		if !bindOptionalJSON(c, span, &req) {
			return
		}

		agent := dto.Agent{
			ID:   utils.GetUserIdFromContext(ctx),
			Name: utils.GetUserNameFromContext(ctx),
		}
		commentID, err := h.tickets.Reply(ctx, id, req.Message, agent)
		if err != nil {
			h.respondError(c, span, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "ticket_id": id, "comment_id": commentID})
	}
}

func (h *TicketsHandler) DownloadAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "TicketsHandler.DownloadAttachment")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		id, ok := ticketIDParam(c)
		if !ok {
			return
		}

		attachment, data, err := h.tickets.GetAttachment(ctx, id, c.Param("attachmentId"))
		if err != nil {
			h.respondError(c, span, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, attachment.Filename))
		c.Header("X-Content-Type-Options", "nosniff")
		c.Data(http.StatusOK, attachment.ContentType, data)
	}
}

func (h *TicketsHandler) respondError(c *gin.Context, span opentracing.Span, err error) {
	switch {
	case errors.Is(err, internalerrors.ErrTicketNotFound):
		api_errors.NotFound(c, "Ticket not found")
	case errors.Is(err, internalerrors.ErrAttachmentNotFound):
		api_errors.NotFound(c, "Attachment not found")
	case errors.Is(err, internalerrors.ErrMissingStatus):
		api_errors.BadRequest(c, api_errors.CodeMissingStatus, "Status is required")
	case errors.Is(err, internalerrors.ErrMissingMessage):
		api_errors.BadRequest(c, api_errors.CodeMissingMessage, "Message is required")
	case errors.Is(err, internalerrors.ErrMissingSubject):
		api_errors.BadRequest(c, api_errors.CodeMissingSubject, "Subject is required")
	case errors.Is(err, internalerrors.ErrInvalidEmail):
		api_errors.BadRequest(c, api_errors.CodeInvalidCustomerEmail, "A valid customer email is required")
	default:
		tracing.TraceErr(span, err)
		h.log.Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		api_errors.Internal(c)
	}
}

// ticketIDParam parses :id. A malformed id cannot name a ticket, so it is
// reported as not found.
func ticketIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		api_errors.NotFound(c, "Ticket not found")
		return 0, false
	}
	return id, true
}

// bindOptionalJSON decodes a JSON body when one is present. An empty body
// leaves target zero valued so field validation reports the missing value.
func bindOptionalJSON(c *gin.Context, span opentracing.Span, target any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(target); err != nil {
		tracing.TraceErr(span, err)
		api_errors.BadRequest(c, api_errors.CodeInvalidRequest, "Invalid JSON payload")
		return false
	}
	return true
}

func validateCreateInput(input dto.CreateTicketInput) *api_errors.MultiErrors {
	validationErrors := api_errors.NewMultiErrors()
	if utils.SanitizeTextField(input.Subject) == "" {
		validationErrors.Add("subject", api_errors.CodeMissingSubject, "subject is required", internalerrors.ErrMissingSubject)
	}
	email := strings.TrimSpace(input.CustomerEmail)
	if email == "" {
		validationErrors.Add("customer_email", api_errors.CodeInvalidCustomerEmail, "customer_email is required", internalerrors.ErrInvalidEmail)
	} else if !mailvalidate.ValidateEmailSyntax(email).IsValid {
		validationErrors.Add("customer_email", api_errors.CodeInvalidCustomerEmail, "customer_email is not a valid address", internalerrors.ErrInvalidEmail)
	}
	return validationErrors
}
