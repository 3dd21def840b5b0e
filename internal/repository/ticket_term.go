package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/customeros/mailtickets/interfaces"
	"github.com/customeros/mailtickets/internal/enum"
	"github.com/customeros/mailtickets/internal/models"
	"github.com/customeros/mailtickets/internal/tracing"
)

type termRepository struct {
	db *gorm.DB
}

func NewTermRepository(db *gorm.DB) interfaces.TermRepository {
	return &termRepository{db: db}
}

// EnsureTerm inserts the term unless it already exists.
func (r *termRepository) EnsureTerm(ctx context.Context, taxonomy enum.Taxonomy, name string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "termRepository.EnsureTerm")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag("taxonomy", taxonomy.String())
	span.SetTag("term", name)

	if name == "" {
		return ErrInvalidInput
	}

	term := models.TicketTerm{}
	err := r.db.WithContext(ctx).
		Where(models.TicketTerm{Taxonomy: taxonomy.String(), Name: name}).
		FirstOrCreate(&term).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "ensure term %s/%s", taxonomy, name)
	}
	return nil
}

func (r *termRepository) SeedDefaults(ctx context.Context) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "termRepository.SeedDefaults")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	for _, status := range enum.DefaultTicketStatuses {
		if err := r.EnsureTerm(ctx, enum.TaxonomyTicketStatus, status.String()); err != nil {
			tracing.TraceErr(span, err)
			return err
		}
	}
	for _, priority := range enum.DefaultTicketPriorities {
		if err := r.EnsureTerm(ctx, enum.TaxonomyTicketPriority, priority.String()); err != nil {
			tracing.TraceErr(span, err)
			return err
		}
	}
	return nil
}

func (r *termRepository) ListByTaxonomy(ctx context.Context, taxonomy enum.Taxonomy) ([]*models.TicketTerm, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "termRepository.ListByTaxonomy")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var terms []*models.TicketTerm
	err := r.db.WithContext(ctx).
		Where("taxonomy = ?", taxonomy.String()).
		Order("id ASC").
		Find(&terms).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "list terms")
	}
	return terms, nil
}
