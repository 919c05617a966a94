package middleware

import (
	"context"
	"net/http"
	"strings"

	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/logger"
	"posstock/internal/pkg/respond"
	"posstock/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// UserClaims são os dados do operador autenticado anexados ao contexto.
type UserClaims struct {
	UserID string
	Role   domain.UserRole
}

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.Claims, error)
}

// NewAuthMiddleware valida o JWT do header Authorization e anexa as claims
// (UserID e Role) ao contexto da requisição.
func NewAuthMiddleware(tokens TokenValidator, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				respond.Error(w, r, log, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				respond.Error(w, r, log, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			ctx := WithUserClaims(r.Context(), UserClaims{
				UserID: claims.UserID,
				Role:   domain.UserRole(claims.Role),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserClaims anexa as claims ao contexto.
func WithUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, UserClaimsKey, claims)
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// RequireRoles só deixa passar operadores com um dos papéis informados.
// Deve rodar depois de NewAuthMiddleware.
func RequireRoles(log logger.Logger, roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				respond.Error(w, r, log, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Warn("Acesso negado por papel.", map[string]interface{}{"user_id": claims.UserID, "role": claims.Role, "path": r.URL.Path})
			respond.Error(w, r, log, apperror.NewForbiddenError("Você não tem a permissão necessária."))
		})
	}
}
