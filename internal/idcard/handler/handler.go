package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/service"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/errors"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/httputil"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/logger"
)

const maxUploadSize = 20 << 20 // 20MB

// uploadRequest carries the validated parts of the multipart upload
type uploadRequest struct {
	ContentType string `validate:"required,startswith=image/"`
	Filename    string `validate:"required,max=255"`
}

// Handler handles HTTP requests for ID card extraction
type Handler struct {
	service *service.Service
	log     *logger.Logger
}

// NewHandler creates a new ID card extraction handler
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: svc,
		log:     log,
	}
}

// RegisterRoutes registers the extraction routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/id/extract", h.Extract)
	r.Get("/id/extract/{jobId}", h.GetResult)
}

// Extract handles POST /api/v1/id/extract
// Accepts a multipart form with a single "file" part holding the card image.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.Error(w, errors.BadRequest("file too large or invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.Error(w, errors.BadRequest("missing file in request"))
		return
	}
	defer file.Close()

	req := uploadRequest{
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	// The image stays in memory; the service zeroes it after processing.
	imageData, err := io.ReadAll(file)
	if err != nil {
		httputil.Error(w, errors.Internal("failed to read uploaded file"))
		return
	}

	job, err := h.service.StartExtraction(r.Context(), imageData)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to start extraction")
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusAccepted, job)
}

// GetResult handles GET /api/v1/id/extract/{jobId}
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")
	if jobID == "" {
		httputil.Error(w, errors.BadRequest("missing jobId parameter"))
		return
	}

	job, err := h.service.GetJob(jobID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, job)
}
