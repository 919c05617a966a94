package product

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"posstock/internal/domain"
	"posstock/internal/pkg/logger"
	"posstock/internal/pkg/middleware"
	"posstock/internal/pkg/respond"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetProducts(ctx context.Context, page, limit int, filters map[string]string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetPricing(ctx context.Context, id string) (domain.PricingView, error)
	GetSupplyInsight(ctx context.Context, id string) (domain.SupplyView, error)
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateProductHandler lida com a requisição POST /v1/products.
// @Summary Cadastra um produto
// @Description Cria um produto com embalagem (caixa × pacote), preços e quantidade inicial.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body domain.ProductInput true "Dados do produto"
// @Success 201 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "SKU já cadastrado"
// @Failure 422 {object} domain.ErrorResponse "Embalagem inválida"
// @Router /v1/products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := respond.Bind(r, &in); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		h.Logger.Info("Criação de produto solicitada.", map[string]interface{}{"user_id": claims.UserID, "sku": in.SKU})
	}

	created, err := h.Service.CreateProduct(r.Context(), in)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusCreated, created)
}

// GetProductsHandler lida com GET /v1/products.
// @Summary Lista produtos
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página (começa em 1)"
// @Param limit query int false "Itens por página (máx. 100)"
// @Param name query string false "Filtro por nome (contém)"
// @Param sku query string false "Filtro por SKU exato"
// @Param is_active query bool false "Somente ativos"
// @Success 200 {array} domain.Product
// @Router /v1/products [get]
func (h *Handler) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	filters := map[string]string{
		"name":      q.Get("name"),
		"sku":       q.Get("sku"),
		"is_active": q.Get("is_active"),
	}

	products, err := h.Service.GetProducts(r.Context(), page, limit, filters)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, products)
}

// GetProductByIDHandler lida com GET /v1/products/{id}.
// @Summary Busca um produto
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, p)
}

// UpdateProductHandler lida com PUT /v1/products/{id}.
// @Summary Atualiza um produto
// @Description Altera catálogo, embalagem e preços. A quantidade só muda por ajustes de estoque.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param product body domain.ProductInput true "Dados do produto com expected_version"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /v1/products/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := respond.Bind(r, &in); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, updated)
}

// DeleteProductHandler lida com DELETE /v1/products/{id}.
// @Summary Desativa um produto
// @Tags products
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPricingHandler lida com GET /v1/products/{id}/pricing.
// @Summary Margens e desconto da caixa
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.PricingView
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse "Embalagem inválida"
// @Router /v1/products/{id}/pricing [get]
func (h *Handler) GetPricingHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetPricing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, view)
}

// GetSupplyHandler lida com GET /v1/products/{id}/supply.
// @Summary Dias de cobertura e sugestão de reposição
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.SupplyView
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/products/{id}/supply [get]
func (h *Handler) GetSupplyHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetSupplyInsight(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, view)
}
