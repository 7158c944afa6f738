package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"labcatalog-api/internal/model"
	"labcatalog-api/pkg/apierror"
)

const quoteColumns = `id, company_name, company_tax_id, contact_name, email, phone,
	product_ids, estimated_quantity, message, status, created_at, contacted_at, notes`

type QuoteRepository struct {
	pool *pgxpool.Pool
}

func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{pool: pool}
}

func (r *QuoteRepository) Create(ctx context.Context, req model.CreateQuoteRequest) (model.Quote, error) {
	q, err := scanQuote(r.pool.QueryRow(ctx,
		`INSERT INTO quotes (company_name, company_tax_id, contact_name, email, phone,
		                     product_ids, estimated_quantity, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+quoteColumns,
		req.CompanyName, req.CompanyTaxID, req.ContactName, req.Email, req.Phone,
		req.ProductIDs, req.EstimatedQuantity, req.Message, model.QuoteStatusPending))
	if err != nil {
		return model.Quote{}, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("create quote: %w", err))
	}
	return q, nil
}

// List runs the filtered listing plus a count query over the same
// predicates, each as its own round trip.
func (r *QuoteRepository) List(ctx context.Context, fb *FilterBuilder) ([]model.Quote, int64, error) {
	query, args := fb.SQL(`SELECT ` + quoteColumns + ` FROM quotes`)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("list quotes: %w", err))
	}
	defer rows.Close()

	quotes := make([]model.Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, 0, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("scan quote: %w", err))
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("list quotes rows: %w", err))
	}

	countQuery, countArgs := fb.CountSQL(`SELECT COUNT(*) FROM quotes`)

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("count quotes: %w", err))
	}

	return quotes, total, nil
}

func (r *QuoteRepository) FindByID(ctx context.Context, id int32) (model.Quote, error) {
	q, err := scanQuote(r.pool.QueryRow(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Quote{}, apierror.New(apierror.KindNotFound, fmt.Sprintf("quote %d not found", id))
	}
	if err != nil {
		return model.Quote{}, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("find quote by id: %w", err))
	}
	return q, nil
}

func (r *QuoteRepository) UpdateStatus(ctx context.Context, id int32, status string, notes *string) (model.Quote, error) {
	q, err := scanQuote(r.pool.QueryRow(ctx,
		`UPDATE quotes
		 SET status = $2,
		     notes = COALESCE($3, notes),
		     contacted_at = CASE WHEN $2 = 'contacted' THEN NOW() ELSE contacted_at END
		 WHERE id = $1
		 RETURNING `+quoteColumns,
		id, status, notes))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Quote{}, apierror.New(apierror.KindNotFound, fmt.Sprintf("quote %d not found", id))
	}
	if err != nil {
		return model.Quote{}, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("update quote status: %w", err))
	}
	return q, nil
}

func scanQuote(row pgx.Row) (model.Quote, error) {
	var q model.Quote
	err := row.Scan(&q.ID, &q.CompanyName, &q.CompanyTaxID, &q.ContactName, &q.Email,
		&q.Phone, &q.ProductIDs, &q.EstimatedQuantity, &q.Message, &q.Status,
		&q.CreatedAt, &q.ContactedAt, &q.Notes)
	return q, err
}
