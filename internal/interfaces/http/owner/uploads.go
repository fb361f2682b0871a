package owner

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	ownerapp "github.com/hostlink-ma/hostlink-services/api/internal/owner/application"
)

const (
	uploadFormMemory = 32 << 20
	// Multipart framing on top of the largest allowed batch.
	uploadOverhead = 1 << 20
	uploadTimeout  = 60 * time.Second
)

// uploadHandler takes a multipart form with a "purpose" field (logo or
// portfolio) and one or more "files" parts.
func (h *Handler) uploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.uploads == nil {
			common.WriteJSON(h.logger, w, http.StatusServiceUnavailable, map[string]string{"error": "uploads are not configured"})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, ownerapp.MaxPortfolioBatchBytes+uploadOverhead)
		if err := r.ParseMultipartForm(uploadFormMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				common.WriteJSON(h.logger, w, http.StatusRequestEntityTooLarge, map[string]string{"error": "upload exceeds the size limit"})
				return
			}
			common.WriteBadRequest(h.logger, w, "expected a multipart form")
			return
		}
		defer r.MultipartForm.RemoveAll()

		purpose := ownerapp.UploadPurpose(strings.ToLower(strings.TrimSpace(r.FormValue("purpose"))))
		headers := r.MultipartForm.File["files"]

		files := make([]ownerapp.UploadFile, 0, len(headers))
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				common.WriteError(h.logger, w, r, fmt.Errorf("open %s: %w", header.Filename, apperrors.ErrValidation), "")
				return
			}
			defer func(f multipart.File) { _ = f.Close() }(file)
			files = append(files, ownerapp.UploadFile{Name: header.Filename, Size: header.Size, Body: file})
		}

		ctx, cancel := context.WithTimeout(r.Context(), uploadTimeout)
		defer cancel()

		stored, err := h.uploads.Upload(ctx, common.ActorFromContext(ctx), purpose, files)
		if err != nil {
			common.WriteError(h.logger, w, r, err, "failed to store upload")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, map[string]any{"files": stored})
	}
}
