package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailtickets/dto"
	internalerrors "github.com/customeros/mailtickets/internal/errors"
	"github.com/customeros/mailtickets/internal/models"
)

func TestTicketRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(newTestDB(t))

	ticket := &models.Ticket{
		Subject:       "Printer broken",
		Content:       "It jams.",
		CustomerEmail: "alice@example.com",
		CustomerName:  "Alice",
	}
	require.NoError(t, repo.Create(ctx, ticket))
	assert.NotZero(t, ticket.ID)

	got, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Printer broken", got.Subject)
	assert.Equal(t, "Open", got.Status)
	assert.Equal(t, "Medium", got.Priority)
	assert.Equal(t, "Alice", got.CustomerName)
}

func TestTicketRepository_CreateTruncatesSubject(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(newTestDB(t))

	ticket := &models.Ticket{Subject: strings.Repeat("é", 250), CustomerEmail: "a@example.com"}
	require.NoError(t, repo.Create(ctx, ticket))

	got, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, len([]rune(got.Subject)))
}

func TestTicketRepository_GetByID_NotFound(t *testing.T) {
	repo := NewTicketRepository(newTestDB(t))

	got, err := repo.GetByID(context.Background(), 9999)

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestTicketRepository_Status(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(newTestDB(t))

	ticket := &models.Ticket{Subject: "s", CustomerEmail: "a@example.com", Status: "Pending"}
	require.NoError(t, repo.Create(ctx, ticket))

	status, err := repo.GetStatus(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", status)

	require.NoError(t, repo.SetStatus(ctx, ticket.ID, "Waiting on vendor"))
	status, err = repo.GetStatus(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Waiting on vendor", status)

	assert.ErrorIs(t, repo.SetStatus(ctx, 9999, "Closed"), internalerrors.ErrTicketNotFound)
	_, err = repo.GetStatus(ctx, 9999)
	assert.ErrorIs(t, err, internalerrors.ErrTicketNotFound)
}

func TestTicketRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(newTestDB(t))

	for i := 1; i <= 25; i++ {
		status := "Open"
		if i%5 == 0 {
			status = "Closed"
		}
		require.NoError(t, repo.Create(ctx, &models.Ticket{
			Subject:       fmt.Sprintf("Ticket %d", i),
			Content:       "body",
			CustomerEmail: "c@example.com",
			Status:        status,
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Ticket{Subject: "Refund request", Content: "money back", CustomerEmail: "r@example.com"}))

	t.Run("default paging newest first", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, dto.TicketListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(26), total)
		require.Len(t, tickets, 20)
		assert.Equal(t, "Refund request", tickets[0].Subject)
	})

	t.Run("second page", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, dto.TicketListFilter{Page: 2, PerPage: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(26), total)
		assert.Len(t, tickets, 6)
	})

	t.Run("status filter", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, dto.TicketListFilter{Status: "closed"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		for _, ticket := range tickets {
			assert.Equal(t, "Closed", ticket.Status)
		}
	})

	t.Run("search", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, dto.TicketListFilter{Search: "REFUND"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, "Refund request", tickets[0].Subject)
	})
}
