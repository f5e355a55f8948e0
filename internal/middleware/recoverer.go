package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/satvik2131/lamars-truck-backend/internal/handler/api"
	"github.com/satvik2131/lamars-truck-backend/internal/logger"
)

// Recoverer turns a panic in any downstream handler into a JSON 500.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				// net/http closes the connection silently for this one
				panic(rvr)
			}

			logger.Errorf(r.Context(), "❌  panic: %v\n%s", rvr, debug.Stack())

			err, ok := rvr.(error)
			if !ok {
				err = errors.New(fmt.Sprint(rvr))
			}
			api.WriteError(r.Context(), w, http.StatusInternalServerError, api.MsgUploadFailed, err)
		}()

		next.ServeHTTP(w, r)
	})
}
