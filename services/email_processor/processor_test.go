package email_processor

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/metrics"
	"github.com/customeros/mailtickets/internal/mocks"
	"github.com/customeros/mailtickets/internal/models"
	"github.com/customeros/mailtickets/internal/repository"
	"github.com/customeros/mailtickets/services/attachments"
)

type testDeps struct {
	tickets     *mocks.TicketRepository
	comments    *mocks.TicketCommentRepository
	attachments *mocks.TicketAttachmentRepository
}

func newTestProcessor(dedup interfaces.MessageDeduplicator) (*Processor, *testDeps) {
	deps := &testDeps{
		tickets:     new(mocks.TicketRepository),
		comments:    new(mocks.TicketCommentRepository),
		attachments: new(mocks.TicketAttachmentRepository),
	}
	repos := &repository.Repositories{
		TicketRepository:           deps.tickets,
		TicketCommentRepository:    deps.comments,
		TicketAttachmentRepository: deps.attachments,
	}
	log := logger.NewNopLogger()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	return NewProcessor(repos, attachments.NewProcessor(log, m), dedup, log, m), deps
}

func replyMessage(ticketID uint64) *dto.EmailMessage {
	msg := validMessage()
	msg.Subject = "Re: " + dto.TicketReference(ticketID) + " Printer broken"
	msg.Body = "Any update?"
	msg.ExtractTicketReference()
	return msg
}

func assignID(id uint64) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*models.Ticket).ID = id
	}
}

func TestIngest_CreatesTicket(t *testing.T) {
	// Arrange
	p, deps := newTestProcessor(nil)
	msg := validMessage()
	deps.tickets.On("Create", mock.Anything, mock.MatchedBy(func(ticket *models.Ticket) bool {
		return ticket.Subject == "Printer broken" &&
			ticket.Content == "It jams on every page." &&
			ticket.CustomerEmail == "alice@example.com" &&
			ticket.CustomerName == "Alice" &&
			ticket.Status == "Open" &&
			ticket.Priority == "Medium"
	})).Run(assignID(17)).Return(nil)

	// Act
	result, err := p.Ingest(context.Background(), msg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, IngestResult{TicketID: 17}, result)
	deps.tickets.AssertExpectations(t)
	deps.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngest_TruncatesLongSubject(t *testing.T) {
	p, deps := newTestProcessor(nil)
	msg := validMessage()
	msg.Subject = strings.Repeat("x", 300)

	var created *models.Ticket
	deps.tickets.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.Ticket)
		created.ID = 1
	}).Return(nil)

	_, err := p.Ingest(context.Background(), msg)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Len(t, created.Subject, models.TicketSubjectMaxLength)
}

func TestIngest_InvalidEmailIsSkipped(t *testing.T) {
	p, deps := newTestProcessor(nil)
	msg := validMessage()
	msg.From = "nope"

	result, err := p.Ingest(context.Background(), msg)

	require.NoError(t, err)
	assert.Equal(t, IngestResult{Skipped: SkippedInvalidEmail}, result)
	deps.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngest_CreationFailureIsSkipped(t *testing.T) {
	p, deps := newTestProcessor(nil)
	deps.tickets.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	result, err := p.Ingest(context.Background(), validMessage())

	require.NoError(t, err)
	assert.Equal(t, IngestResult{Skipped: SkippedCreationFailed}, result)
}

func TestIngest_ReplyAppendsComment(t *testing.T) {
	// Arrange
	p, deps := newTestProcessor(nil)
	deps.tickets.On("GetByID", mock.Anything, uint64(42)).
		Return(&models.Ticket{ID: 42, Status: "Open", CustomerEmail: "alice@example.com"}, nil)
	deps.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.TicketComment) bool {
		return c.TicketID == 42 &&
			c.Author == "Alice" &&
			c.AuthorEmail == "alice@example.com" &&
			c.Content == "Any update?" &&
			c.Source == "customer"
	})).Return(nil)

	// Act
	result, err := p.Ingest(context.Background(), replyMessage(42))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, IngestResult{ReplyAdded: true, TicketID: 42}, result)
	deps.comments.AssertExpectations(t)
	deps.tickets.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	deps.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngest_ReplyAuthorFallsBackToAddress(t *testing.T) {
	p, deps := newTestProcessor(nil)
	msg := replyMessage(42)
	msg.FromName = ""
	deps.tickets.On("GetByID", mock.Anything, uint64(42)).Return(&models.Ticket{ID: 42, Status: "Closed"}, nil)
	deps.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.TicketComment) bool {
		return c.Author == "alice@example.com"
	})).Return(nil)

	result, err := p.Ingest(context.Background(), msg)

	require.NoError(t, err)
	assert.True(t, result.ReplyAdded)
	deps.tickets.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngest_ReplyReopensPendingTicket(t *testing.T) {
	for _, status := range []string{"Pending", "pending", "PENDING"} {
		t.Run(status, func(t *testing.T) {
			p, deps := newTestProcessor(nil)
			deps.tickets.On("GetByID", mock.Anything, uint64(5)).Return(&models.Ticket{ID: 5, Status: status}, nil)
			deps.comments.On("Create", mock.Anything, mock.Anything).Return(nil)
			deps.tickets.On("SetStatus", mock.Anything, uint64(5), "Open").Return(nil)

			result, err := p.Ingest(context.Background(), replyMessage(5))

			require.NoError(t, err)
			assert.True(t, result.ReplyAdded)
			deps.tickets.AssertExpectations(t)
		})
	}
}

func TestIngest_ReopenFailureStillReportsReply(t *testing.T) {
	p, deps := newTestProcessor(nil)
	deps.tickets.On("GetByID", mock.Anything, uint64(5)).Return(&models.Ticket{ID: 5, Status: "Pending"}, nil)
	deps.comments.On("Create", mock.Anything, mock.Anything).Return(nil)
	deps.tickets.On("SetStatus", mock.Anything, uint64(5), "Open").Return(errors.New("db down"))

	result, err := p.Ingest(context.Background(), replyMessage(5))

	require.NoError(t, err)
	assert.Equal(t, IngestResult{ReplyAdded: true, TicketID: 5}, result)
}

func TestIngest_StaleReferenceCreatesTicket(t *testing.T) {
	p, deps := newTestProcessor(nil)
	msg := replyMessage(999)
	deps.tickets.On("GetByID", mock.Anything, uint64(999)).Return(nil, nil)
	deps.tickets.On("Create", mock.Anything, mock.MatchedBy(func(ticket *models.Ticket) bool {
		return ticket.Subject == msg.Subject
	})).Run(assignID(1000)).Return(nil)

	result, err := p.Ingest(context.Background(), msg)

	require.NoError(t, err)
	assert.Equal(t, IngestResult{TicketID: 1000}, result)
	deps.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngest_ReplyFailureReturnsError(t *testing.T) {
	p, deps := newTestProcessor(nil)
	deps.tickets.On("GetByID", mock.Anything, uint64(5)).Return(&models.Ticket{ID: 5, Status: "Open"}, nil)
	deps.comments.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := p.Ingest(context.Background(), replyMessage(5))

	assert.Error(t, err)
	deps.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngest_DuplicateIsSkipped(t *testing.T) {
	dedup := new(mocks.MessageDeduplicator)
	dedup.On("FirstSeen", mock.Anything, "msg-1").Return(false)
	p, deps := newTestProcessor(dedup)
	msg := validMessage()
	msg.MessageID = "msg-1"

	result, err := p.Ingest(context.Background(), msg)

	require.NoError(t, err)
	assert.Equal(t, IngestResult{Skipped: SkippedDuplicate}, result)
	deps.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngest_StoresValidAttachmentsBestEffort(t *testing.T) {
	// Arrange
	p, deps := newTestProcessor(nil)
	msg := validMessage()
	msg.Attachments = []dto.RawAttachment{
		{Name: "a.txt", Content: base64.StdEncoding.EncodeToString([]byte("aaa"))},
		{Name: "evil.exe", Content: base64.StdEncoding.EncodeToString([]byte("MZ"))},
		{Name: "b.pdf", Content: base64.StdEncoding.EncodeToString([]byte("%PDF"))},
	}
	deps.tickets.On("Create", mock.Anything, mock.Anything).Run(assignID(3)).Return(nil)
	deps.attachments.On("Store", mock.Anything, uint64(3), "a.txt", "text/plain", []byte("aaa")).
		Return(nil, errors.New("bucket unavailable"))
	deps.attachments.On("Store", mock.Anything, uint64(3), "b.pdf", "application/pdf", []byte("%PDF")).
		Return(&models.TicketAttachment{ID: "file-1"}, nil)

	// Act
	result, err := p.Ingest(context.Background(), msg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, IngestResult{TicketID: 3}, result)
	deps.attachments.AssertExpectations(t)
	deps.attachments.AssertNumberOfCalls(t, "Store", 2)
}

func TestIngest_RepliesDoNotStoreAttachments(t *testing.T) {
	p, deps := newTestProcessor(nil)
	msg := replyMessage(42)
	msg.Attachments = []dto.RawAttachment{{Name: "a.txt", Content: base64.StdEncoding.EncodeToString([]byte("a"))}}
	deps.tickets.On("GetByID", mock.Anything, uint64(42)).Return(&models.Ticket{ID: 42, Status: "Open"}, nil)
	deps.comments.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := p.Ingest(context.Background(), msg)

	require.NoError(t, err)
	deps.attachments.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

type memoryDeduplicator struct {
	seen map[string]bool
}

func newMemoryDeduplicator() *memoryDeduplicator {
	return &memoryDeduplicator{seen: map[string]bool{}}
}

func (d *memoryDeduplicator) FirstSeen(ctx context.Context, messageID string) bool {
	if d.seen[messageID] {
		return false
	}
	d.seen[messageID] = true
	return true
}

func (d *memoryDeduplicator) Forget(ctx context.Context, messageID string) {
	delete(d.seen, messageID)
}

func TestIngest_RetryAfterCreationFailureIsProcessed(t *testing.T) {
	// Arrange
	dedup := newMemoryDeduplicator()
	p, deps := newTestProcessor(dedup)
	deps.tickets.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	deps.tickets.On("Create", mock.Anything, mock.Anything).Run(assignID(8)).Return(nil).Once()
	msg := validMessage()
	msg.MessageID = "msg-retry"

	// Act
	first, err := p.Ingest(context.Background(), msg)
	require.NoError(t, err)
	second, err := p.Ingest(context.Background(), msg)
	require.NoError(t, err)
	third, err := p.Ingest(context.Background(), msg)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, IngestResult{Skipped: SkippedCreationFailed}, first)
	assert.Equal(t, IngestResult{TicketID: 8}, second)
	assert.Equal(t, IngestResult{Skipped: SkippedDuplicate}, third)
	deps.tickets.AssertNumberOfCalls(t, "Create", 2)
}

func TestIngest_RetryAfterReplyFailureIsProcessed(t *testing.T) {
	dedup := newMemoryDeduplicator()
	p, deps := newTestProcessor(dedup)
	deps.tickets.On("GetByID", mock.Anything, uint64(5)).Return(&models.Ticket{ID: 5, Status: "Open"}, nil)
	deps.comments.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	deps.comments.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	msg := replyMessage(5)
	msg.MessageID = "msg-reply"

	_, err := p.Ingest(context.Background(), msg)
	require.Error(t, err)
	result, err := p.Ingest(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, IngestResult{ReplyAdded: true, TicketID: 5}, result)
	assert.True(t, dedup.seen["msg-reply"])
}
