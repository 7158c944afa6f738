package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"labcatalog-api/internal/model"
	"labcatalog-api/pkg/apierror"
)

const productColumns = `id, name, slug, description, category_id, specifications,
	image_url, additional_images, regulatory_info, technical_sheet_url,
	is_active, created_at, updated_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List runs the filtered listing plus the companion count query built
// from the same predicate set. The two reads are independent round
// trips; eventual consistency between them is acceptable here.
func (r *ProductRepository) List(ctx context.Context, fb *FilterBuilder) ([]model.Product, int64, error) {
	query, args := fb.SQL(`SELECT ` + productColumns + ` FROM products`)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("list products: %w", err))
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("scan product: %w", err))
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("list products rows: %w", err))
	}

	countQuery, countArgs := fb.CountSQL(`SELECT COUNT(*) FROM products`)

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("count products: %w", err))
	}

	return products, total, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string, activeOnly bool) (model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}

	p, err := scanProduct(r.pool.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, apierror.New(apierror.KindNotFound, fmt.Sprintf("product %s not found", slug))
	}
	if err != nil {
		return model.Product{}, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("find product by slug: %w", err))
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, req model.CreateProductRequest) (model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`INSERT INTO products (name, slug, description, category_id, specifications, regulatory_info, technical_sheet_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+productColumns,
		req.Name, req.Slug, req.Description, req.CategoryID,
		jsonOrEmpty(req.Specifications), jsonOrEmpty(req.RegulatoryInfo), req.TechnicalSheetURL))
	if err != nil {
		return model.Product{}, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("create product: %w", err))
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int32, req model.UpdateProductRequest) (model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`UPDATE products
		 SET name = COALESCE($2, name),
		     slug = COALESCE($3, slug),
		     description = COALESCE($4, description),
		     category_id = COALESCE($5, category_id),
		     specifications = COALESCE($6, specifications),
		     regulatory_info = COALESCE($7, regulatory_info),
		     technical_sheet_url = COALESCE($8, technical_sheet_url),
		     is_active = COALESCE($9, is_active),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+productColumns,
		id, req.Name, req.Slug, req.Description, req.CategoryID,
		nilIfEmpty(req.Specifications), nilIfEmpty(req.RegulatoryInfo),
		req.TechnicalSheetURL, req.IsActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, apierror.New(apierror.KindNotFound, fmt.Sprintf("product %d not found", id))
	}
	if err != nil {
		return model.Product{}, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("update product: %w", err))
	}
	return p, nil
}

func (r *ProductRepository) Toggle(ctx context.Context, id int32) (model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`UPDATE products SET is_active = NOT is_active, updated_at = NOW()
		 WHERE id = $1 RETURNING `+productColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, apierror.New(apierror.KindNotFound, fmt.Sprintf("product %d not found", id))
	}
	if err != nil {
		return model.Product{}, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("toggle product: %w", err))
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int32) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return apierror.Wrap(apierror.KindDatabase, fmt.Errorf("delete product: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apierror.New(apierror.KindNotFound, fmt.Sprintf("product %d not found", id))
	}
	return nil
}

// NamesByIDs resolves product names for notification rendering.
func (r *ProductRepository) NamesByIDs(ctx context.Context, ids []int32) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM products WHERE id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("product names by ids: %w", err))
	}
	defer rows.Close()

	names := make([]string, 0, len(ids))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("scan product name: %w", err))
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("product names rows: %w", err))
	}
	return names, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.CategoryID,
		&p.Specifications, &p.ImageURL, &p.AdditionalImages, &p.RegulatoryInfo,
		&p.TechnicalSheetURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func jsonOrEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage(`{}`)
	}
	return raw
}

func nilIfEmpty(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
