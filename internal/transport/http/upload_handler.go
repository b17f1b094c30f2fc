package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"dataniaga/internal/analytics"
	apierrors "dataniaga/internal/errors"
	"dataniaga/internal/services"
	api "dataniaga/pkg/contracts/api/v1"
)

// Uploader forwards a validated file to the downstream analytics
// service.
type Uploader interface {
	Upload(ctx context.Context, filename string, content []byte) (*analytics.UploadResult, error)
}

// UploadHandler handles transaction file uploads and validation requests.
type UploadHandler struct {
	service      *services.ValidationService
	uploader     Uploader
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewUploadHandler creates an upload handler. The uploader is optional;
// when nil, valid files are acknowledged without forwarding.
func NewUploadHandler(service *services.ValidationService, uploader Uploader, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		service:      service,
		uploader:     uploader,
		errorHandler: errorHandler,
		validate:     validator.New(),
		logger:       logger.With(slog.String("handler", "upload")),
	}
}

// Routes sets up the upload routes.
func (h *UploadHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload-data", h.UploadData)
	r.Post("/validate", h.ValidateOnly)
	return r
}

// UploadData handles POST /api/upload-data. The file is validated and,
// when clean, forwarded to the analytics service. An invalid file
// returns 422 with the full validation report so the client can show
// every error at once.
func (h *UploadHandler) UploadData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filename, content, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	run, err := h.service.ValidateFile(ctx, filename, content)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if !run.Report.IsValid {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, api.ValidationResponse{
			RunID:  run.RunID,
			Report: run.Report,
		})
		return
	}

	if h.uploader == nil {
		render.JSON(w, r, api.UploadResponse{
			Status:  "success",
			Message: "Data validated",
			Records: run.Report.Stats.ValidRows,
		})
		return
	}

	result, err := h.uploader.Upload(ctx, filename, run.Content)
	if err != nil {
		h.logger.ErrorContext(ctx, "forwarding to analytics failed",
			slog.String("run_id", run.RunID),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.service.RecordForwarded(ctx)

	render.JSON(w, r, api.UploadResponse{
		Status:  result.Status,
		Message: result.Message,
		Records: result.Records,
	})
}

// ValidateOnly handles POST /api/validate. It runs the same pipeline as
// UploadData but never forwards, returning the report for valid and
// invalid files alike.
func (h *UploadHandler) ValidateOnly(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filename, content, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	run, err := h.service.ValidateFile(ctx, filename, content)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.ValidationResponse{
		RunID:  run.RunID,
		Report: run.Report,
	})
}

// readUpload extracts the "file" part of a multipart request. The body
// is capped slightly above the pipeline's file-size limit so the
// gatekeeper, not the HTTP server, produces the size rejection.
func (h *UploadHandler) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	maxSize := h.service.Options().MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return "", nil, apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST",
			"Request must be multipart/form-data with a file part", err.Error())
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, apierrors.ErrValidation("file", "file part is required")
	}
	defer file.Close()

	req := api.UploadRequest{
		Filename: header.Filename,
		Size:     header.Size,
	}
	if err := h.validate.Struct(req); err != nil {
		return "", nil, apierrors.ErrValidation("filename", "filename must not be empty")
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST",
			"Failed to read uploaded file", err.Error())
	}

	return header.Filename, content, nil
}
