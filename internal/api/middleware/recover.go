package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
)

// NewRecoverer turns a panic inside a request into an Internal error
// response. http.ErrAbortHandler is re-raised so net/http can abort the
// connection.
func NewRecoverer(onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					// ALLOW-PANIC: net/http handles this sentinel itself
					panic(p)
				}
				logger.FromContext(r.Context()).Error("recovered from panic",
					slog.Any("panic", p),
					slog.String("stack", string(debug.Stack())))
				onError(w, r, apperr.Internal(fmt.Errorf("panic: %v", p)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
