package model

import (
	"encoding/json"
	"time"
)

type Product struct {
	ID                int32           `json:"id"`
	Name              string          `json:"name"`
	Slug              string          `json:"slug"`
	Description       *string         `json:"description"`
	CategoryID        *int32          `json:"category_id"`
	Specifications    json.RawMessage `json:"specifications"`
	ImageURL          *string         `json:"image_url"`
	AdditionalImages  json.RawMessage `json:"additional_images"`
	RegulatoryInfo    json.RawMessage `json:"regulatory_info"`
	TechnicalSheetURL *string         `json:"technical_sheet_url"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type CreateProductRequest struct {
	Name              string          `json:"name"`
	Slug              string          `json:"slug"`
	Description       *string         `json:"description"`
	CategoryID        *int32          `json:"category_id"`
	Specifications    json.RawMessage `json:"specifications"`
	RegulatoryInfo    json.RawMessage `json:"regulatory_info"`
	TechnicalSheetURL *string         `json:"technical_sheet_url"`
}

type UpdateProductRequest struct {
	Name              *string         `json:"name"`
	Slug              *string         `json:"slug"`
	Description       *string         `json:"description"`
	CategoryID        *int32          `json:"category_id"`
	Specifications    json.RawMessage `json:"specifications"`
	RegulatoryInfo    json.RawMessage `json:"regulatory_info"`
	TechnicalSheetURL *string         `json:"technical_sheet_url"`
	IsActive          *bool           `json:"is_active"`
}

// ProductFilter carries the caller-chosen predicates for a product
// listing. Zero values mean "no predicate".
type ProductFilter struct {
	CategorySlug string
	Search       string
	ActiveOnly   bool
	Active       *bool
	Page         int
	Limit        int
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
