package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/ecostock/ecostock-api/internal/logger"
	"go.uber.org/zap"
)

// Recovery turns a panicking handler into a 500 with the standard error body
func Recovery(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.WithRequest(log, r.Method, r.URL.Path, RequestIDFromContext(r.Context())).
					Error("panic recovered",
						zap.Any("panic", rec),
						zap.ByteString("stack", debug.Stack()),
					)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Erro interno do servidor"}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
