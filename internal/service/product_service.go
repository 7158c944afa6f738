package service

import (
	"context"

	"labcatalog-api/internal/model"
	"labcatalog-api/internal/repository"
	"labcatalog-api/internal/util"
	"labcatalog-api/internal/validation"
)

// ProductStore is the persistence surface the product service needs.
type ProductStore interface {
	List(ctx context.Context, fb *repository.FilterBuilder) ([]model.Product, int64, error)
	FindBySlug(ctx context.Context, slug string, activeOnly bool) (model.Product, error)
	Create(ctx context.Context, req model.CreateProductRequest) (model.Product, error)
	Update(ctx context.Context, id int32, req model.UpdateProductRequest) (model.Product, error)
	Toggle(ctx context.Context, id int32) (model.Product, error)
	Delete(ctx context.Context, id int32) error
}

type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// List translates the caller's filter into parameterized predicates.
// Filter values pass through the sanitizer before reaching the builder
// even though they are only ever bound, never interpolated.
func (s *ProductService) List(ctx context.Context, filter model.ProductFilter) (model.ProductListResponse, error) {
	fb := repository.NewFilterBuilder().Paginate(filter.Page, filter.Limit)

	if filter.ActiveOnly {
		fb.Where("is_active = ?", true)
	} else if filter.Active != nil {
		fb.Where("is_active = ?", *filter.Active)
	}

	if filter.CategorySlug != "" {
		fb.Where("category_id = (SELECT id FROM categories WHERE slug = ?)",
			util.SanitizeText(filter.CategorySlug))
	}

	if filter.Search != "" {
		fb.Search(util.SanitizeText(filter.Search), "name", "description")
	}

	products, total, err := s.products.List(ctx, fb)
	if err != nil {
		return model.ProductListResponse{}, err
	}

	return model.ProductListResponse{
		Products: products,
		Total:    total,
		Page:     fb.Page(),
		Limit:    fb.Limit(),
	}, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string, activeOnly bool) (model.Product, error) {
	return s.products.FindBySlug(ctx, util.SanitizeText(slug), activeOnly)
}

func (s *ProductService) Create(ctx context.Context, req model.CreateProductRequest) (model.Product, error) {
	v := validation.New()
	v.Length("name", req.Name, 2, 255)
	v.Length("slug", req.Slug, 2, 255)
	v.OptionalLength("description", req.Description, 0, 5000)
	v.OptionalURL("technical_sheet_url", req.TechnicalSheetURL)
	if err := v.Err(); err != nil {
		return model.Product{}, err
	}

	req.Name = util.SanitizeText(req.Name)
	req.Slug = util.SanitizeText(req.Slug)
	req.Description = util.SanitizeTextPtr(req.Description)

	return s.products.Create(ctx, req)
}

func (s *ProductService) Update(ctx context.Context, id int32, req model.UpdateProductRequest) (model.Product, error) {
	v := validation.New()
	v.OptionalLength("name", req.Name, 2, 255)
	v.OptionalLength("slug", req.Slug, 2, 255)
	v.OptionalLength("description", req.Description, 0, 5000)
	v.OptionalURL("technical_sheet_url", req.TechnicalSheetURL)
	if err := v.Err(); err != nil {
		return model.Product{}, err
	}

	req.Name = util.SanitizeTextPtr(req.Name)
	req.Slug = util.SanitizeTextPtr(req.Slug)
	req.Description = util.SanitizeTextPtr(req.Description)

	return s.products.Update(ctx, id, req)
}

func (s *ProductService) Toggle(ctx context.Context, id int32) (model.Product, error) {
	return s.products.Toggle(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id int32) error {
	return s.products.Delete(ctx, id)
}
