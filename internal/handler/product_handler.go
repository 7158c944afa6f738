package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"labcatalog-api/internal/model"
	"labcatalog-api/internal/service"
	"labcatalog-api/pkg/apierror"
)

type ProductHandler struct {
	service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// ListPublic serves the storefront catalog: active products only, with
// optional category and search filters.
func (h *ProductHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.service.List(r.Context(), model.ProductFilter{
		CategorySlug: query.Get("category"),
		Search:       query.Get("search"),
		ActiveOnly:   true,
		Page:         queryInt(query.Get("page"), 1),
		Limit:        queryInt(query.Get("limit"), 20),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

// ListAdmin serves the management listing, including inactive products.
func (h *ProductHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var active *bool
	if raw := query.Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, apierror.New(apierror.KindBadRequest, "active must be true or false"))
			return
		}
		active = &parsed
	}

	result, err := h.service.List(r.Context(), model.ProductFilter{
		Active: active,
		Page:   queryInt(query.Get("page"), 1),
		Limit:  queryInt(query.Get("limit"), 50),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"), true)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New(apierror.KindBadRequest, "invalid JSON body"))
		return
	}

	product, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New(apierror.KindBadRequest, "invalid JSON body"))
		return
	}

	product, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product)
}

func (h *ProductHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.service.Toggle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}

func pathID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id < 1 {
		writeError(w, apierror.New(apierror.KindBadRequest, "id must be a positive integer"))
		return 0, false
	}
	return int32(id), true
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
