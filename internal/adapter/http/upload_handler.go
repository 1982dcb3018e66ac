package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type UploadHandler struct {
	service  interfaces.UploadService
	maxBytes int64
	logger   logger.Logger
}

func NewUploadHandler(service interfaces.UploadService, maxBytes int64, lgr logger.Logger) *UploadHandler {
	return &UploadHandler{service: service, maxBytes: maxBytes, logger: lgr}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxBytes + 1); err != nil {
		respondError(w, domain.NewValidationError("file", "invalid multipart request"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, domain.NewValidationError("file", "is required"))
		return
	}
	defer file.Close()

	url, err := h.save(r, file, header)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *UploadHandler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxBytes + 1); err != nil {
		respondError(w, domain.NewValidationError("files", "invalid multipart request"))
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		respondError(w, domain.NewValidationError("files", "at least one file is required"))
		return
	}

	urls := make([]string, 0, len(r.MultipartForm.File["files"]))
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			respondError(w, fmt.Errorf("failed to open %s: %w", header.Filename, err))
			return
		}

		url, err := h.save(r, file, header)
		file.Close()
		if err != nil {
			respondError(w, err)
			return
		}
		urls = append(urls, url)
	}

	respondData(w, http.StatusCreated, map[string][]string{"urls": urls})
}

func (h *UploadHandler) save(r *http.Request, file multipart.File, header *multipart.FileHeader) (string, error) {
	// Read one byte past the cap so oversized files fail with the file name
	// instead of a generic read error.
	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", header.Filename, err)
	}

	compress := r.FormValue("compress") == "true"
	return h.service.Save(r.Context(), header.Filename, data, compress)
}
