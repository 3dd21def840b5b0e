package email_processor

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/metrics"
	"github.com/customeros/mailtickets/internal/repository"
	"github.com/customeros/mailtickets/services/attachments"
	"github.com/customeros/mailtickets/services/tickets"
)

func newSqliteRepositories(t *testing.T) *repository.Repositories {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repository.AutoMigrate(db))

	return repository.InitRepositories(db, nil)
}

func TestIngest_CreateThenReplyBuildsConversation(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repos := newSqliteRepositories(t)
	log := logger.NewNopLogger()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	p := NewProcessor(repos, attachments.NewProcessor(log, m), nil, log, m)
	ticketService := tickets.NewService(repos, nil, nil, "http://localhost:12222", log)

	opening := &dto.EmailMessage{From: "a@b.com", Subject: "Help", Body: "hi"}
	opening.ExtractTicketReference()

	// Act
	created, err := p.Ingest(ctx, opening)
	require.NoError(t, err)
	require.NotZero(t, created.TicketID)

	reply := &dto.EmailMessage{From: "a@b.com", Subject: "Re: " + dto.TicketReference(created.TicketID) + " Help", Body: "still broken"}
	reply.ExtractTicketReference()
	replied, err := p.Ingest(ctx, reply)
	require.NoError(t, err)

	detail, err := ticketService.Get(ctx, created.TicketID)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, IngestResult{ReplyAdded: true, TicketID: created.TicketID}, replied)
	require.Len(t, detail.Conversation, 2)
	assert.Equal(t, "a@b.com", detail.Conversation[0].Author)
	assert.Equal(t, "hi", detail.Conversation[0].Content)
	assert.Equal(t, "a@b.com", detail.Conversation[1].Author)
	assert.Equal(t, "still broken", detail.Conversation[1].Content)
	assert.Equal(t, "Open", detail.Status)
}
