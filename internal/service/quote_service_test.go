package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"labcatalog-api/internal/event"
	"labcatalog-api/internal/model"
	"labcatalog-api/internal/repository"
	"labcatalog-api/pkg/apierror"
)

type stubQuoteStore struct {
	created   *model.CreateQuoteRequest
	createErr error
	updated   *model.UpdateQuoteStatusRequest
	lastFB    *repository.FilterBuilder
}

func (s *stubQuoteStore) Create(_ context.Context, req model.CreateQuoteRequest) (model.Quote, error) {
	if s.createErr != nil {
		return model.Quote{}, s.createErr
	}
	s.created = &req
	return model.Quote{
		ID:           42,
		CompanyName:  req.CompanyName,
		CompanyTaxID: req.CompanyTaxID,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		ProductIDs:   req.ProductIDs,
		Message:      req.Message,
		Status:       model.QuoteStatusPending,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (s *stubQuoteStore) List(_ context.Context, fb *repository.FilterBuilder) ([]model.Quote, int64, error) {
	s.lastFB = fb
	return []model.Quote{{ID: 1}}, 1, nil
}

func (s *stubQuoteStore) FindByID(_ context.Context, id int32) (model.Quote, error) {
	return model.Quote{ID: id}, nil
}

func (s *stubQuoteStore) UpdateStatus(_ context.Context, id int32, status string, notes *string) (model.Quote, error) {
	s.updated = &model.UpdateQuoteStatusRequest{Status: status, Notes: notes}
	return model.Quote{ID: id, Status: status, Notes: notes}, nil
}

type stubProductNamer struct {
	names []string
	err   error
}

func (s *stubProductNamer) NamesByIDs(_ context.Context, _ []int32) ([]string, error) {
	return s.names, s.err
}

func validQuoteRequest() model.CreateQuoteRequest {
	phone := "+51 999 888 777"
	message := "Interested in bulk pricing."
	return model.CreateQuoteRequest{
		CompanyName:  "Acme Labs S.A.C.",
		CompanyTaxID: "20100047218",
		ContactName:  "Maria Torres",
		Email:        "maria@acmelabs.example",
		Phone:        &phone,
		ProductIDs:   []int32{1, 2},
		Message:      &message,
	}
}

func TestSubmitQuote(t *testing.T) {
	t.Parallel()

	store := &stubQuoteStore{}
	bus := event.NewBus()
	svc := NewQuoteService(store, &stubProductNamer{names: []string{"Centrifuge X200", "Microscope M1"}}, bus)

	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	quote, err := svc.Submit(context.Background(), validQuoteRequest())
	require.NoError(t, err)
	require.Equal(t, int32(42), quote.ID)
	require.Equal(t, model.QuoteStatusPending, quote.Status)

	select {
	case e := <-events:
		require.Equal(t, event.TypeQuoteCreated, e.Type)
		payload, ok := e.Payload.(event.QuoteCreatedPayload)
		require.True(t, ok)
		require.Equal(t, int32(42), payload.QuoteID)
		require.Equal(t, []string{"Centrifuge X200", "Microscope M1"}, payload.ProductNames)
	case <-time.After(time.Second):
		t.Fatal("expected a quote.created event")
	}
}

func TestSubmitQuoteAggregatesViolations(t *testing.T) {
	t.Parallel()

	store := &stubQuoteStore{}
	svc := NewQuoteService(store, &stubProductNamer{}, event.NewBus())

	_, err := svc.Submit(context.Background(), model.CreateQuoteRequest{
		CompanyName:  "x",
		CompanyTaxID: "nope",
		ContactName:  "",
		Email:        "not-an-email",
	})
	require.Error(t, err)

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, apierror.KindValidation, apiErr.Kind)

	// Every failing field is reported in one response.
	require.Contains(t, apiErr.Details, "company_name")
	require.Contains(t, apiErr.Details, "company_tax_id")
	require.Contains(t, apiErr.Details, "contact_name")
	require.Contains(t, apiErr.Details, "email")
	require.Contains(t, apiErr.Details, "product_ids")

	require.Nil(t, store.created)
}

func TestSubmitQuoteRejectsBadChecksum(t *testing.T) {
	t.Parallel()

	store := &stubQuoteStore{}
	svc := NewQuoteService(store, &stubProductNamer{}, event.NewBus())

	req := validQuoteRequest()
	req.CompanyTaxID = "20100047219"

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, apierror.KindInvalidTaxID, apiErr.Kind)
	require.Nil(t, store.created)
}

func TestSubmitQuoteSanitizesBeforePersisting(t *testing.T) {
	t.Parallel()

	store := &stubQuoteStore{}
	svc := NewQuoteService(store, &stubProductNamer{}, event.NewBus())

	message := `Need a quote<script>alert(1)</script> soon`
	req := validQuoteRequest()
	req.CompanyName = "<b>Acme Labs</b>"
	req.Message = &message

	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, store.created)
	require.Equal(t, "Acme Labs", store.created.CompanyName)
	require.NotNil(t, store.created.Message)
	require.Equal(t, "Need a quote soon", *store.created.Message)
}

func TestSubmitQuoteSurvivesNameLookupFailure(t *testing.T) {
	t.Parallel()

	store := &stubQuoteStore{}
	bus := event.NewBus()
	svc := NewQuoteService(store, &stubProductNamer{err: errors.New("db down")}, bus)

	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	_, err := svc.Submit(context.Background(), validQuoteRequest())
	require.NoError(t, err)

	select {
	case e := <-events:
		payload, ok := e.Payload.(event.QuoteCreatedPayload)
		require.True(t, ok)
		require.Nil(t, payload.ProductNames)
	case <-time.After(time.Second):
		t.Fatal("expected a quote.created event")
	}
}

func TestListQuotesFiltersByStatus(t *testing.T) {
	t.Parallel()

	store := &stubQuoteStore{}
	svc := NewQuoteService(store, &stubProductNamer{}, event.NewBus())

	result, err := svc.List(context.Background(), model.QuoteFilter{Status: "pending", Page: 0, Limit: 500})
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total)
	require.Equal(t, 1, result.Page)
	require.Equal(t, repository.MaxLimit, result.Limit)

	require.NotNil(t, store.lastFB)
	query, args := store.lastFB.CountSQL("SELECT COUNT(*) FROM quotes")
	require.Contains(t, query, "status = $1")
	require.Equal(t, []any{"pending"}, args)
}

func TestUpdateQuoteStatus(t *testing.T) {
	t.Parallel()

	store := &stubQuoteStore{}
	svc := NewQuoteService(store, &stubProductNamer{}, event.NewBus())

	quote, err := svc.UpdateStatus(context.Background(), 7, model.UpdateQuoteStatusRequest{Status: model.QuoteStatusContacted})
	require.NoError(t, err)
	require.Equal(t, model.QuoteStatusContacted, quote.Status)

	rejected := &stubQuoteStore{}
	svc = NewQuoteService(rejected, &stubProductNamer{}, event.NewBus())

	_, err = svc.UpdateStatus(context.Background(), 7, model.UpdateQuoteStatusRequest{Status: "archived"})
	require.Error(t, err)

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, apierror.KindValidation, apiErr.Kind)
	require.Nil(t, rejected.updated)
}

func TestUpdateQuoteStatusPublishesEvent(t *testing.T) {
	t.Parallel()

	store := &stubQuoteStore{}
	bus := event.NewBus()
	svc := NewQuoteService(store, &stubProductNamer{}, bus)

	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	_, err := svc.UpdateStatus(context.Background(), 9, model.UpdateQuoteStatusRequest{Status: model.QuoteStatusClosed})
	require.NoError(t, err)

	select {
	case e := <-events:
		require.Equal(t, event.TypeQuoteStatusChanged, e.Type)
		payload, ok := e.Payload.(event.QuoteStatusChangedPayload)
		require.True(t, ok)
		require.Equal(t, int32(9), payload.QuoteID)
		require.Equal(t, model.QuoteStatusClosed, payload.Status)
	case <-time.After(time.Second):
		t.Fatal("no status change event published")
	}

	_, err = svc.UpdateStatus(context.Background(), 9, model.UpdateQuoteStatusRequest{Status: "archived"})
	require.Error(t, err)

	select {
	case e := <-events:
		t.Fatalf("unexpected event %q for rejected status", e.Type)
	default:
	}
}
