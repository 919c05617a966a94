package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"posstock/internal/pkg/logger"
)

// RequestLogger registra método, rota, status e duração de cada requisição.
// Deve rodar depois de chimiddleware.RequestID.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			fields := map[string]interface{}{
				"request_id":  chimiddleware.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if ww.Status() >= http.StatusInternalServerError {
				log.Warn("Requisição concluída com erro", fields)
				return
			}
			log.Info("Requisição concluída", fields)
		})
	}
}
