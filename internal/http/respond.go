package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/TeemuStew/expense-tracker/internal/core"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode response", "error", err)
	}
}

// writeError maps domain failures to statuses: bad input is 400, a stale id
// is 404, anything else is a store fault and comes back as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *core.ValidationError
		nerr *core.NotFoundError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.As(err, &nerr):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Store fault", "error", err, "url", r.URL.Path)
	} else {
		slog.WarnContext(r.Context(), "Request rejected", "error", err, "status", status, "url", r.URL.Path)
	}

	writeJSON(w, r, status, map[string]string{"error": err.Error()})
}
