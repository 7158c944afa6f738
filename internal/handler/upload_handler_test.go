package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"labcatalog-api/internal/service"
)

type fakePutter struct{}

func (fakePutter) PutObject(_ context.Context, _ *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return &s3.PutObjectOutput{}, nil
}

func newUploadHandler() *UploadHandler {
	svc := service.NewUploadService(fakePutter{}, "catalog", "https://cdn.example.com", 1024)
	return NewUploadHandler(svc)
}

func multipartBody(t *testing.T, field string, filename string, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadHandler(t *testing.T) {
	t.Parallel()

	h := newUploadHandler()

	body, contentType := multipartBody(t, "file", "photo.jpg", "image/jpeg", []byte("fake jpeg bytes"))
	req := httptest.NewRequest("POST", "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	url, _ := data["url"].(string)
	require.Contains(t, url, "https://cdn.example.com/products/images/")
}

func TestUploadHandlerMissingFileField(t *testing.T) {
	t.Parallel()

	h := newUploadHandler()

	body, contentType := multipartBody(t, "attachment", "photo.jpg", "image/jpeg", []byte("bytes"))
	req := httptest.NewRequest("POST", "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", decodeResponse(t, rec).Error.Code)
}

func TestUploadHandlerRejectsDisallowedType(t *testing.T) {
	t.Parallel()

	h := newUploadHandler()

	body, contentType := multipartBody(t, "file", "script.svg", "image/svg+xml", []byte("<svg/>"))
	req := httptest.NewRequest("POST", "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", decodeResponse(t, rec).Error.Code)
}
