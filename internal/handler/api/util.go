package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/satvik2131/lamars-truck-backend/internal/logger"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// WriteError logs err against the request context and writes
// {message, error}. The error text is only exposed for server-side failures.
func WriteError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Message: msg}
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
		if status >= http.StatusInternalServerError {
			resp.Error = err.Error()
		}
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, resp)
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}
