package service

import (
	"context"

	"labcatalog-api/internal/model"
	"labcatalog-api/internal/util"
	"labcatalog-api/internal/validation"
)

// CategoryStore is the persistence surface the category service needs.
type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error)
	Update(ctx context.Context, id int32, req model.UpdateCategoryRequest) (model.Category, error)
	Delete(ctx context.Context, id int32) error
}

type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	v := validation.New()
	v.Length("name", req.Name, 2, 255)
	v.Length("slug", req.Slug, 2, 255)
	v.OptionalLength("description", req.Description, 0, 2000)
	if err := v.Err(); err != nil {
		return model.Category{}, err
	}

	req.Name = util.SanitizeText(req.Name)
	req.Slug = util.SanitizeText(req.Slug)
	req.Description = util.SanitizeTextPtr(req.Description)

	return s.categories.Create(ctx, req)
}

func (s *CategoryService) Update(ctx context.Context, id int32, req model.UpdateCategoryRequest) (model.Category, error) {
	v := validation.New()
	v.OptionalLength("name", req.Name, 2, 255)
	v.OptionalLength("slug", req.Slug, 2, 255)
	v.OptionalLength("description", req.Description, 0, 2000)
	if err := v.Err(); err != nil {
		return model.Category{}, err
	}

	req.Name = util.SanitizeTextPtr(req.Name)
	req.Slug = util.SanitizeTextPtr(req.Slug)
	req.Description = util.SanitizeTextPtr(req.Description)

	return s.categories.Update(ctx, id, req)
}

func (s *CategoryService) Delete(ctx context.Context, id int32) error {
	return s.categories.Delete(ctx, id)
}
