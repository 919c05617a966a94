package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	// Registra a especificação OpenAPI servida em /swagger.
	_ "posstock/docs"
	"posstock/internal/api/product"
	"posstock/internal/api/stock"
	"posstock/internal/api/user"
	"posstock/internal/domain"
	"posstock/internal/pkg/cache"
	"posstock/internal/pkg/logger"
	"posstock/internal/pkg/middleware"
)

// Deps são os Handlers e a infraestrutura já inicializados por injeção de dependências.
type Deps struct {
	Products *product.Handler
	Stock    *stock.Handler
	Users    *user.Handler
	Tokens   middleware.TokenValidator
	Cache    cache.Client
	Logger   logger.Logger

	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
	RequestTimeout       time.Duration

	// EnableDocs expõe /swagger; desligado em produção.
	EnableDocs bool
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimiddleware.RealIP,
		chimiddleware.RequestID,
		middleware.RequestLogger(d.Logger),
		chimiddleware.Recoverer,
	)
	if d.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(d.RequestTimeout))
	}

	// Health check e documentação.
	r.Get("/ping", PingHandler)
	if d.EnableDocs {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	r.Route("/v1", func(r chi.Router) {
		// Públicas, com rate limit por IP.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimiter(d.Cache, d.RateLimitMaxRequests, d.RateLimitPeriod, d.Logger))
			r.Post("/register", d.Users.RegisterUserHandler)
			r.Post("/login", d.Users.LoginUserHandler)
		})

		// Autenticadas, com rate limit por operador.
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAuthMiddleware(d.Tokens, d.Logger))
			r.Use(middleware.RateLimiter(d.Cache, d.RateLimitMaxRequests, d.RateLimitPeriod, d.Logger))

			writers := middleware.RequireRoles(d.Logger, domain.RoleAdmin, domain.RoleManager)
			admins := middleware.RequireRoles(d.Logger, domain.RoleAdmin)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", d.Products.GetProductsHandler)
				r.With(writers).Post("/", d.Products.CreateProductHandler)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", d.Products.GetProductByIDHandler)
					r.With(writers).Put("/", d.Products.UpdateProductHandler)
					r.With(admins).Delete("/", d.Products.DeleteProductHandler)

					r.Get("/pricing", d.Products.GetPricingHandler)
					r.Get("/supply", d.Products.GetSupplyHandler)

					r.Post("/stock/preview", d.Stock.PreviewAdjustmentHandler)
					r.Get("/stock/adjustments", d.Stock.ListAdjustmentsHandler)
					r.With(writers).Post("/stock/adjustments", d.Stock.AdjustStockHandler)
				})
			})
		})
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
