package stock

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/logger"
	"posstock/internal/pkg/middleware"
	"posstock/internal/pkg/respond"
	"posstock/internal/reconcile"
)

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	PreviewAdjustment(ctx context.Context, productID string, req reconcile.AdjustmentRequest) (reconcile.AdjustmentResult, error)
	AdjustStock(ctx context.Context, productID string, expectedVersion int, req reconcile.AdjustmentRequest, actorID string) (domain.AdjustmentOutcome, error)
	ListAdjustments(ctx context.Context, productID string, limit int) ([]domain.StockAdjustment, error)
}

// Handler agrupa todos os métodos de Handler de estoque.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// PreviewAdjustmentHandler lida com POST /v1/products/{id}/stock/preview.
// @Summary Pré-visualiza um ajuste de estoque
// @Description Converte caixa/unidade, valida e devolve o delta normalizado sem gravar. Rejeições voltam com valid=false.
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param adjustment body domain.StockAdjustmentPayload true "Ajuste digitado pelo operador"
// @Success 200 {object} reconcile.AdjustmentResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/products/{id}/stock/preview [post]
func (h *Handler) PreviewAdjustmentHandler(w http.ResponseWriter, r *http.Request) {
	var payload domain.StockAdjustmentPayload
	if err := respond.Bind(r, &payload); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	result, err := h.Service.PreviewAdjustment(r.Context(), chi.URLParam(r, "id"), payload.Request())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, result)
}

// AdjustStockHandler lida com POST /v1/products/{id}/stock/adjustments.
// @Summary Envia um ajuste de estoque
// @Description Revalida o ajuste contra a versão atual do produto e grava no livro de ajustes.
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param adjustment body domain.StockAdjustmentPayload true "Ajuste com a versão esperada do produto"
// @Success 201 {object} domain.AdjustmentOutcome
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Versão desatualizada"
// @Failure 422 {object} domain.ErrorResponse "Ajuste rejeitado; category traz o código"
// @Router /v1/products/{id}/stock/adjustments [post]
func (h *Handler) AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Autorização necessária."))
		return
	}

	var payload domain.StockAdjustmentPayload
	if err := respond.Bind(r, &payload); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	if payload.ExpectedVersion == nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError("expected_version é obrigatório"))
		return
	}

	outcome, err := h.Service.AdjustStock(r.Context(), chi.URLParam(r, "id"), *payload.ExpectedVersion, payload.Request(), claims.UserID)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusCreated, outcome)
}

// ListAdjustmentsHandler lida com GET /v1/products/{id}/stock/adjustments.
// @Summary Histórico de ajustes
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param limit query int false "Máximo de linhas (padrão 50)"
// @Success 200 {array} domain.StockAdjustment
// @Failure 404 {object} domain.ErrorResponse
// @Router /v1/products/{id}/stock/adjustments [get]
func (h *Handler) ListAdjustmentsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	adjustments, err := h.Service.ListAdjustments(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, adjustments)
}
