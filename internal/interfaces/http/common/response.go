package common

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hostlink-ma/hostlink-services/api/internal/apperrors"
	"github.com/hostlink-ma/hostlink-services/api/internal/logging"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("encode JSON response", "err", err)
	}
}

// WriteError maps err onto a status code and writes {"error": message}.
// Client errors echo the wrapped message; server errors are logged and hidden
// behind fallback.
func WriteError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = errors.Join(apperrors.ErrDependency, err)
	}
	status, code := apperrors.Classify(err)
	log := logging.FromContext(r.Context(), logger)

	message := err.Error()
	switch {
	case status >= http.StatusInternalServerError:
		log.Error(fallback, "err", err, "code", code)
		message = fallback
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		log.Warn("access denied", "err", err, "code", code)
	}
	WriteJSON(log, w, status, map[string]string{"error": message})
}

// WriteBadRequest reports a malformed request body or parameter.
func WriteBadRequest(logger *slog.Logger, w http.ResponseWriter, message string) {
	WriteJSON(logger, w, http.StatusBadRequest, map[string]string{"error": message})
}
