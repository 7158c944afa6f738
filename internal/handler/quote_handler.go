package handler

import (
	"encoding/json"
	"net/http"

	"labcatalog-api/internal/model"
	"labcatalog-api/internal/service"
	"labcatalog-api/pkg/apierror"
)

type QuoteHandler struct {
	service *service.QuoteService
}

func NewQuoteHandler(service *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Submit is the public quote-intake endpoint.
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New(apierror.KindBadRequest, "invalid JSON body"))
		return
	}

	quote, err := h.service.Submit(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"id":      quote.ID,
		"message": "Quote request submitted successfully",
	})
}

func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.service.List(r.Context(), model.QuoteFilter{
		Status: query.Get("status"),
		Page:   queryInt(query.Get("page"), 1),
		Limit:  queryInt(query.Get("limit"), 50),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	quote, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, quote)
}

func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload model.UpdateQuoteStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New(apierror.KindBadRequest, "invalid JSON body"))
		return
	}

	quote, err := h.service.UpdateStatus(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, quote)
}
