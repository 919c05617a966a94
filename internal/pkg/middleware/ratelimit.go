package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"posstock/internal/domain"
	"posstock/internal/pkg/cache"
	"posstock/internal/pkg/logger"
	"posstock/internal/pkg/respond"
)

const rateLimitPrefix = "rate-limit:"

// RateLimiter limita requisições por janela fixa, com contador no Redis.
// A chave é o operador autenticado ou, sem claims, o IP do cliente.
// Falha do Redis deixa a requisição passar.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := rateLimitPrefix + clientKey(r)

			count, err := client.GetInt(ctx, key)
			switch {
			case errors.Is(err, cache.ErrCacheMiss):
				if setErr := client.Set(ctx, key, 1, window); setErr != nil {
					log.Warn("Falha ao iniciar janela do rate limit.", map[string]interface{}{"key": key, "error": setErr.Error()})
				}
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			case err != nil:
				log.Warn("Rate limit indisponível, liberando requisição.", map[string]interface{}{"key": key, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			if count >= limit {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				respond.JSON(w, log, http.StatusTooManyRequests, domain.ErrorResponse{
					Code:     http.StatusTooManyRequests,
					Category: "RATE_LIMITED",
					Message:  "Limite de requisições excedido.",
				})
				return
			}

			if _, err := client.Incr(ctx, key); err != nil {
				log.Warn("Falha ao incrementar rate limit.", map[string]interface{}{"key": key, "error": err.Error()})
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if claims, ok := GetUserClaimsFromContext(r.Context()); ok {
		return "user:" + claims.UserID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
