package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/interfaces/rest"
)

// Recovery turns a handler panic into the standard 500 envelope. A transfer
// that panics mid-flight leaves its audit entry pending; the reconciler
// surfaces those.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				logger.Error("panic while serving request",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"stack", string(debug.Stack()),
				)

				rest.WriteError(w, application.NewInternalError(fmt.Errorf("panic: %v", rec)), logger)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
