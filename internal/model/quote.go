package model

import "time"

const (
	QuoteStatusPending   = "pending"
	QuoteStatusContacted = "contacted"
	QuoteStatusClosed    = "closed"
)

type Quote struct {
	ID                int32      `json:"id"`
	CompanyName       string     `json:"company_name"`
	CompanyTaxID      string     `json:"company_tax_id"`
	ContactName       string     `json:"contact_name"`
	Email             string     `json:"email"`
	Phone             *string    `json:"phone"`
	ProductIDs        []int32    `json:"product_ids"`
	EstimatedQuantity *string    `json:"estimated_quantity"`
	Message           *string    `json:"message"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	ContactedAt       *time.Time `json:"contacted_at"`
	Notes             *string    `json:"notes"`
}

type CreateQuoteRequest struct {
	CompanyName       string  `json:"company_name"`
	CompanyTaxID      string  `json:"company_tax_id"`
	ContactName       string  `json:"contact_name"`
	Email             string  `json:"email"`
	Phone             *string `json:"phone"`
	ProductIDs        []int32 `json:"product_ids"`
	EstimatedQuantity *string `json:"estimated_quantity"`
	Message           *string `json:"message"`
}

type UpdateQuoteStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// QuoteFilter carries the caller-chosen predicates for a quote listing.
type QuoteFilter struct {
	Status string
	Page   int
	Limit  int
}

type QuoteListResponse struct {
	Quotes []Quote `json:"quotes"`
	Total  int64   `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}
