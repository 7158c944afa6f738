package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"labcatalog-api/internal/event"
	"labcatalog-api/internal/model"
	"labcatalog-api/internal/repository"
	"labcatalog-api/internal/util"
	"labcatalog-api/internal/validation"
	"labcatalog-api/pkg/apierror"
)

// QuoteStore is the persistence surface the quote service needs.
type QuoteStore interface {
	Create(ctx context.Context, req model.CreateQuoteRequest) (model.Quote, error)
	List(ctx context.Context, fb *repository.FilterBuilder) ([]model.Quote, int64, error)
	FindByID(ctx context.Context, id int32) (model.Quote, error)
	UpdateStatus(ctx context.Context, id int32, status string, notes *string) (model.Quote, error)
}

// ProductNamer resolves product names for notification rendering.
type ProductNamer interface {
	NamesByIDs(ctx context.Context, ids []int32) ([]string, error)
}

type QuoteService struct {
	quotes   QuoteStore
	products ProductNamer
	bus      event.Bus
}

func NewQuoteService(quotes QuoteStore, products ProductNamer, bus event.Bus) *QuoteService {
	return &QuoteService{quotes: quotes, products: products, bus: bus}
}

// Submit runs the full intake pipeline: declarative validation on the
// raw payload, tax identifier checksum, sanitization, persistence, and
// finally a quote.created event for the notification dispatcher.
func (s *QuoteService) Submit(ctx context.Context, req model.CreateQuoteRequest) (model.Quote, error) {
	v := validation.New()
	v.Length("company_name", req.CompanyName, 2, 255)
	v.Digits("company_tax_id", req.CompanyTaxID, 11)
	v.Length("contact_name", req.ContactName, 2, 255)
	v.Email("email", req.Email)
	v.OptionalLength("phone", req.Phone, 0, 50)
	v.NotEmpty("product_ids", len(req.ProductIDs))
	v.OptionalLength("estimated_quantity", req.EstimatedQuantity, 0, 1000)
	v.OptionalLength("message", req.Message, 0, 2000)
	if err := v.Err(); err != nil {
		return model.Quote{}, err
	}

	if !util.ValidTaxID(req.CompanyTaxID) {
		slog.Warn("quote submitted with invalid tax id", "company", req.CompanyName)
		return model.Quote{}, apierror.New(apierror.KindInvalidTaxID, "checksum or prefix mismatch")
	}

	req.CompanyName = util.SanitizeText(req.CompanyName)
	req.ContactName = util.SanitizeText(req.ContactName)
	req.Phone = util.SanitizeTextPtr(req.Phone)
	req.EstimatedQuantity = util.SanitizeTextPtr(req.EstimatedQuantity)
	req.Message = util.SanitizeTextPtr(req.Message)

	quote, err := s.quotes.Create(ctx, req)
	if err != nil {
		return model.Quote{}, err
	}

	names, err := s.products.NamesByIDs(ctx, quote.ProductIDs)
	if err != nil {
		// The quote is already stored; a failed name lookup only
		// degrades the notification.
		slog.Error("resolve product names for quote notification", "quote_id", quote.ID, "error", err.Error())
		names = nil
	}

	s.bus.Publish(event.Event{
		ID:         uuid.NewString(),
		Type:       event.TypeQuoteCreated,
		OccurredAt: time.Now().UTC(),
		Payload: event.QuoteCreatedPayload{
			QuoteID:      quote.ID,
			CompanyName:  quote.CompanyName,
			CompanyTaxID: quote.CompanyTaxID,
			ContactName:  quote.ContactName,
			Email:        quote.Email,
			Phone:        quote.Phone,
			ProductNames: names,
			Message:      quote.Message,
		},
	})

	return quote, nil
}

func (s *QuoteService) List(ctx context.Context, filter model.QuoteFilter) (model.QuoteListResponse, error) {
	fb := repository.NewFilterBuilder().Paginate(filter.Page, filter.Limit)

	if filter.Status != "" {
		fb.Where("status = ?", util.SanitizeText(filter.Status))
	}

	quotes, total, err := s.quotes.List(ctx, fb)
	if err != nil {
		return model.QuoteListResponse{}, err
	}

	return model.QuoteListResponse{
		Quotes: quotes,
		Total:  total,
		Page:   fb.Page(),
		Limit:  fb.Limit(),
	}, nil
}

func (s *QuoteService) Get(ctx context.Context, id int32) (model.Quote, error) {
	return s.quotes.FindByID(ctx, id)
}

func (s *QuoteService) UpdateStatus(ctx context.Context, id int32, req model.UpdateQuoteStatusRequest) (model.Quote, error) {
	switch req.Status {
	case model.QuoteStatusPending, model.QuoteStatusContacted, model.QuoteStatusClosed:
	default:
		return model.Quote{}, apierror.New(apierror.KindValidation, "status must be one of pending, contacted, closed")
	}

	quote, err := s.quotes.UpdateStatus(ctx, id, req.Status, util.SanitizeTextPtr(req.Notes))
	if err != nil {
		return model.Quote{}, err
	}

	s.bus.Publish(event.Event{
		ID:         uuid.NewString(),
		Type:       event.TypeQuoteStatusChanged,
		OccurredAt: time.Now().UTC(),
		Payload: event.QuoteStatusChangedPayload{
			QuoteID: quote.ID,
			Status:  quote.Status,
		},
	})

	return quote, nil
}
