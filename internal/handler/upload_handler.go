package handler

import (
	"errors"
	"io"
	"net/http"

	"labcatalog-api/internal/model"
	"labcatalog-api/internal/service"
	"labcatalog-api/pkg/apierror"
)

type UploadHandler struct {
	service *service.UploadService
}

func NewUploadHandler(service *service.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload accepts a multipart form with a single "file" field and
// returns the public URL of the stored object.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// Cap the whole request body a little above the file limit to
	// account for multipart framing overhead.
	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxSize()+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, apierror.New(apierror.KindBadRequest, "file exceeds the upload size limit"))
			return
		}
		writeError(w, apierror.New(apierror.KindBadRequest, "missing or unreadable 'file' field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, apierror.Wrap(apierror.KindInternal, err))
		return
	}

	url, err := h.service.Upload(r.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.UploadResponse{URL: url})
}
