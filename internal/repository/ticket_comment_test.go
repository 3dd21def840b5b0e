package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailtickets/internal/enum"
	"github.com/customeros/mailtickets/internal/models"
)

func TestTicketCommentRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tickets := NewTicketRepository(db)
	comments := NewTicketCommentRepository(db)

	ticket := &models.Ticket{Subject: "s", CustomerEmail: "a@example.com"}
	require.NoError(t, tickets.Create(ctx, ticket))

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, comments.Create(ctx, &models.TicketComment{
			TicketID:    ticket.ID,
			Author:      "Alice",
			AuthorEmail: "a@example.com",
			Content:     content,
			Source:      enum.CommentSourceCustomer.String(),
		}))
	}

	list, err := comments.ListByTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "second", list[1].Content)
	assert.Equal(t, "third", list[2].Content)

	other, err := comments.ListByTicket(ctx, ticket.ID+1)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestTicketCommentRepository_CreateRequiresTicket(t *testing.T) {
	comments := NewTicketCommentRepository(newTestDB(t))

	err := comments.Create(context.Background(), &models.TicketComment{Content: "orphan"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
