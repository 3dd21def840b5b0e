package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailtickets/internal/enum"
)

func TestTermRepository_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewTermRepository(newTestDB(t))

	require.NoError(t, repo.SeedDefaults(ctx))
	// seeding twice must not duplicate
	require.NoError(t, repo.SeedDefaults(ctx))

	statuses, err := repo.ListByTaxonomy(ctx, enum.TaxonomyTicketStatus)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.Equal(t, "Open", statuses[0].Name)
	assert.Equal(t, "Pending", statuses[1].Name)
	assert.Equal(t, "Closed", statuses[2].Name)

	priorities, err := repo.ListByTaxonomy(ctx, enum.TaxonomyTicketPriority)
	require.NoError(t, err)
	assert.Len(t, priorities, 3)
}

func TestTermRepository_EnsureTerm(t *testing.T) {
	ctx := context.Background()
	repo := NewTermRepository(newTestDB(t))

	require.NoError(t, repo.EnsureTerm(ctx, enum.TaxonomyTicketStatus, "Escalated"))
	require.NoError(t, repo.EnsureTerm(ctx, enum.TaxonomyTicketStatus, "Escalated"))

	statuses, err := repo.ListByTaxonomy(ctx, enum.TaxonomyTicketStatus)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "Escalated", statuses[0].Name)

	assert.ErrorIs(t, repo.EnsureTerm(ctx, enum.TaxonomyTicketStatus, ""), ErrInvalidInput)
}
