package api

import (
	"net/http"

	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

func ListRecordsHandler(renderer port.HTTPRenderer, svc port.RecordLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		raw, etag, err := renderer.RenderListRecords(ctx, svc)
		if err != nil {
			WriteError(ctx, w, http.StatusInternalServerError, "Failed to fetch data", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Info(ctx, "✅  Record listing not modified")
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Info(ctx, "✅  Successfully returned record listing")
	}
}
