package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/domain"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/handler"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/service"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/storage"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/logger"
)

type fakeProcessor struct {
	record *domain.FieldRecord
	err    error
}

func (f *fakeProcessor) Process(_ context.Context, _ []byte) (*domain.FieldRecord, error) {
	return f.record, f.err
}

func (f *fakeProcessor) Name() string { return "fake" }

func newRouter(proc *fakeProcessor) (chi.Router, *service.Service) {
	log := logger.New("test", "development")
	store := storage.NewTempStorage(time.Minute)
	svc := service.New(store, proc, nil, log)
	h := handler.NewHandler(svc, log)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return r, svc
}

func multipartImage(t *testing.T, fieldName, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHandler_Extract(t *testing.T) {
	router, _ := newRouter(&fakeProcessor{record: domain.NewFieldRecord()})

	body, contentType := multipartImage(t, "file", "card.jpg", "image/jpeg", []byte("imagedata"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/id/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    domain.ExtractionJob `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.JobID)
	assert.Equal(t, domain.StatusProcessing, resp.Data.Status)
}

func TestHandler_Extract_MissingFile(t *testing.T) {
	router, _ := newRouter(&fakeProcessor{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("other", "value"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/id/extract", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Extract_RejectsNonImage(t *testing.T) {
	router, _ := newRouter(&fakeProcessor{})

	body, contentType := multipartImage(t, "file", "card.pdf", "application/pdf", []byte("pdfdata"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/id/extract", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Extract_NotMultipart(t *testing.T) {
	router, _ := newRouter(&fakeProcessor{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/id/extract", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetResult(t *testing.T) {
	router, svc := newRouter(&fakeProcessor{record: domain.NewFieldRecord()})

	job, err := svc.StartExtraction(context.Background(), []byte("imagedata"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		j, err := svc.GetJob(job.JobID)
		return err == nil && j.Status == domain.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/id/extract/"+job.JobID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    domain.ExtractionJob `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.StatusCompleted, resp.Data.Status)
	require.NotNil(t, resp.Data.Record)
	assert.Equal(t, "0", resp.Data.Record.Birthdate)
}

func TestHandler_GetResult_NotFound(t *testing.T) {
	router, _ := newRouter(&fakeProcessor{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/id/extract/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
