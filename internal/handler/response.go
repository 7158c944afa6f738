package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"labcatalog-api/internal/model"
	"labcatalog-api/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeError resolves every failure to exactly one taxonomy kind. The
// caller sees the kind's stable code and fixed message; backend detail
// goes to the log only.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if !errors.As(err, &apiErr) {
		// Anything that escaped the taxonomy is an internal error.
		apiErr = apierror.Wrap(apierror.KindInternal, err)
	}

	if apiErr.Internal != "" {
		slog.Error("request failed", "code", apiErr.Code, "cause", apiErr.Internal)
	}

	body := &model.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
	}
	if apiErr.Kind.EchoesDetails() {
		body.Details = apiErr.Details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
