package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posstock/internal/api/product"
	"posstock/internal/api/router"
	"posstock/internal/api/stock"
	"posstock/internal/api/user"
	"posstock/internal/pkg/cache"
	"posstock/internal/pkg/logger"
	"posstock/internal/pkg/token"
)

// Os serviços ficam nil: estes testes só exercitam rotas que param antes deles.
func newTestRouter(t *testing.T, tokens *token.Service, docs bool) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	log := logger.Nop()
	return router.NewRouter(router.Deps{
		Products:             product.NewHandler(nil, log),
		Stock:                stock.NewHandler(nil, log),
		Users:                user.NewHandler(nil, log),
		Tokens:               tokens,
		Cache:                client,
		Logger:               log,
		RateLimitMaxRequests: 100,
		RateLimitPeriod:      time.Minute,
		EnableDocs:           docs,
	})
}

func TestRouter_PublicRoutes(t *testing.T) {
	r := newTestRouter(t, token.NewService("segredo", time.Hour), true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/products/{id}/stock/adjustments")
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	tokens := token.NewService("segredo", time.Hour)
	cashier, err := tokens.GenerateToken("u-caixa", "cashier")
	require.NoError(t, err)
	manager, err := tokens.GenerateToken("u-gerente", "manager")
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
	}{
		{"sem token", http.MethodGet, "/v1/products", "", "", http.StatusUnauthorized},
		{"caixa não cria produto", http.MethodPost, "/v1/products", cashier, `{}`, http.StatusForbidden},
		{"caixa não envia ajuste", http.MethodPost, "/v1/products/p1/stock/adjustments", cashier, `{}`, http.StatusForbidden},
		{"gerente não desativa produto", http.MethodDelete, "/v1/products/p1", manager, "", http.StatusForbidden},
		{"gerente com payload inválido", http.MethodPost, "/v1/products/p1/stock/adjustments", manager, `{"mode":"x"}`, http.StatusBadRequest},
	}

	r := newTestRouter(t, tokens, false)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestRouter_DocsDisabled(t *testing.T) {
	r := newTestRouter(t, token.NewService("segredo", time.Hour), false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
