package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/satvik2131/lamars-truck-backend/internal/handler/api"
)

// DefaultBodyLimit bounds url-encoded and JSON bodies.
const DefaultBodyLimit = 1 << 20

// ParseBody eagerly parses url-encoded forms and checks JSON bodies are
// well formed, answering 400 otherwise. Other content types, multipart
// included, pass through untouched.
func ParseBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
			switch mt {
			case "application/x-www-form-urlencoded":
				r.Body = http.MaxBytesReader(w, r.Body, limit)
				if err := r.ParseForm(); err != nil {
					api.WriteError(r.Context(), w, http.StatusBadRequest, "Invalid form body", err)
					return
				}
			case "application/json":
				raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
				if err != nil {
					api.WriteError(r.Context(), w, http.StatusBadRequest, "Invalid JSON body", err)
					return
				}
				if len(raw) > 0 && !json.Valid(raw) {
					api.WriteError(r.Context(), w, http.StatusBadRequest, "Invalid JSON body", nil)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(raw))
			}

			next.ServeHTTP(w, r)
		})
	}
}
