package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"labcatalog-api/internal/model"
	"labcatalog-api/internal/service"
	"labcatalog-api/internal/validation"
	"labcatalog-api/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New(apierror.KindBadRequest, "invalid JSON body"))
		return
	}

	payload.Email = strings.TrimSpace(payload.Email)

	v := validation.New()
	v.Email("email", payload.Email)
	v.Length("password", payload.Password, 6, 128)
	if err := v.Err(); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}
