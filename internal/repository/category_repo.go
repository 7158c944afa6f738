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

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug, description, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("list categories: %w", err))
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt); err != nil {
			return nil, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("scan category: %w", err))
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("list categories rows: %w", err))
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, slug, description) VALUES ($1, $2, $3)
		 RETURNING id, name, slug, description, created_at`,
		req.Name, req.Slug, req.Description).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	if err != nil {
		return model.Category{}, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("create category: %w", err))
	}
	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id int32, req model.UpdateCategoryRequest) (model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx,
		`UPDATE categories
		 SET name = COALESCE($2, name),
		     slug = COALESCE($3, slug),
		     description = COALESCE($4, description)
		 WHERE id = $1
		 RETURNING id, name, slug, description, created_at`,
		id, req.Name, req.Slug, req.Description).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Category{}, apierror.New(apierror.KindNotFound, fmt.Sprintf("category %d not found", id))
	}
	if err != nil {
		return model.Category{}, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("update category: %w", err))
	}
	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int32) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return apierror.Wrap(apierror.KindDatabase, fmt.Errorf("delete category: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apierror.New(apierror.KindNotFound, fmt.Sprintf("category %d not found", id))
	}
	return nil
}
