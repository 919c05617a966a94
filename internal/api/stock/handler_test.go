package stock_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"posstock/internal/api/stock"
	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/logger"
	"posstock/internal/pkg/middleware"
	"posstock/internal/reconcile"
)

type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) PreviewAdjustment(ctx context.Context, productID string, req reconcile.AdjustmentRequest) (reconcile.AdjustmentResult, error) {
	args := m.Called(ctx, productID, req)
	return args.Get(0).(reconcile.AdjustmentResult), args.Error(1)
}

func (m *MockStockService) AdjustStock(ctx context.Context, productID string, expectedVersion int, req reconcile.AdjustmentRequest, actorID string) (domain.AdjustmentOutcome, error) {
	args := m.Called(ctx, productID, expectedVersion, req, actorID)
	return args.Get(0).(domain.AdjustmentOutcome), args.Error(1)
}

func (m *MockStockService) ListAdjustments(ctx context.Context, productID string, limit int) ([]domain.StockAdjustment, error) {
	args := m.Called(ctx, productID, limit)
	return args.Get(0).([]domain.StockAdjustment), args.Error(1)
}

func newRouter(svc *MockStockService) http.Handler {
	h := stock.NewHandler(svc, logger.Nop())
	r := chi.NewRouter()
	r.Post("/v1/products/{id}/stock/preview", h.PreviewAdjustmentHandler)
	r.Post("/v1/products/{id}/stock/adjustments", h.AdjustStockHandler)
	r.Get("/v1/products/{id}/stock/adjustments", h.ListAdjustmentsHandler)
	return r
}

func do(t *testing.T, router http.Handler, method, path, body string, claims *middleware.UserClaims) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if claims != nil {
		req = req.WithContext(middleware.WithUserClaims(req.Context(), *claims))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var manager = &middleware.UserClaims{UserID: "u1", Role: domain.RoleManager}

func TestPreviewAdjustmentHandler(t *testing.T) {
	svc := new(MockStockService)
	want := reconcile.AdjustmentRequest{Mode: reconcile.ModeDelta, InputUnit: reconcile.UnitCase, RawValue: 2, ReasonCode: reconcile.ReasonPurchaseOrder}
	svc.On("PreviewAdjustment", mock.Anything, "p1", want).
		Return(reconcile.AdjustmentResult{NormalizedDelta: 48, NewQuantity: 58, Valid: true}, nil)

	rec := do(t, newRouter(svc), http.MethodPost, "/v1/products/p1/stock/preview",
		`{"mode":"delta","input_unit":"case","raw_value":2,"reason_code":"purchase_order"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var result reconcile.AdjustmentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Valid)
	assert.Equal(t, 48, result.NormalizedDelta)
	svc.AssertExpectations(t)
}

func TestPreviewAdjustmentHandler_InvalidPayload(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"json quebrado", `{"mode":`},
		{"modo desconhecido", `{"mode":"multiply","input_unit":"unit","raw_value":1}`},
		{"sem valor", `{"mode":"delta","input_unit":"unit"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockStockService)

			rec := do(t, newRouter(svc), http.MethodPost, "/v1/products/p1/stock/preview", tc.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Category)
			svc.AssertNotCalled(t, "PreviewAdjustment", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAdjustStockHandler_Created(t *testing.T) {
	svc := new(MockStockService)
	req := reconcile.AdjustmentRequest{Mode: reconcile.ModeAbsolute, InputUnit: reconcile.UnitBase, RawValue: 7, ReasonCode: reconcile.ReasonCount, Notes: "inventário"}
	outcome := domain.AdjustmentOutcome{
		Adjustment: domain.StockAdjustment{ID: "a1", ProductID: "p1", QuantityDelta: -3, QuantityBefore: 10, QuantityAfter: 7},
		Product:    domain.Product{ID: "p1", Quantity: 7, Version: 4},
	}
	svc.On("AdjustStock", mock.Anything, "p1", 3, req, "u1").Return(outcome, nil)

	rec := do(t, newRouter(svc), http.MethodPost, "/v1/products/p1/stock/adjustments",
		`{"mode":"absolute","input_unit":"unit","raw_value":7,"reason_code":"count","notes":"inventário","expected_version":3}`, manager)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.AdjustmentOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, -3, got.Adjustment.QuantityDelta)
	assert.Equal(t, 4, got.Product.Version)
	svc.AssertExpectations(t)
}

func TestAdjustStockHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"estoque negativo", apperror.NewRejectionError(reconcile.NegativeResultingStock), http.StatusUnprocessableEntity, "NEGATIVE_RESULTING_STOCK"},
		{"sem motivo", apperror.NewRejectionError(reconcile.MissingReason), http.StatusUnprocessableEntity, "MISSING_REASON"},
		{"versão desatualizada", apperror.NewConflictError("modificado"), http.StatusConflict, "CONFLICT"},
		{"produto inexistente", apperror.NewNotFoundError("p1"), http.StatusNotFound, "NOT_FOUND"},
		{"falha interna", apperror.NewInternalError("boom", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockStockService)
			svc.On("AdjustStock", mock.Anything, "p1", 2, mock.Anything, "u1").Return(domain.AdjustmentOutcome{}, tc.err)

			rec := do(t, newRouter(svc), http.MethodPost, "/v1/products/p1/stock/adjustments",
				`{"mode":"delta","input_unit":"unit","raw_value":-20,"reason_code":"damage","expected_version":2}`, manager)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.category, body.Category)
			assert.Equal(t, tc.status, body.Code)
		})
	}
}

func TestAdjustStockHandler_InvalidPayload(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"sem versão esperada", `{"mode":"delta","input_unit":"unit","raw_value":1,"reason_code":"return"}`, "expected_version é obrigatório"},
		{"versão zero", `{"mode":"delta","input_unit":"unit","raw_value":1,"reason_code":"return","expected_version":0}`, "expected_version deve ser maior que 0"},
		{"valor acima do limite", `{"mode":"delta","input_unit":"case","raw_value":768614336404564651,"reason_code":"purchase_order","expected_version":3}`, "raw_value excede o limite"},
		{"valor abaixo do limite", `{"mode":"delta","input_unit":"unit","raw_value":-2147483648,"reason_code":"loss","expected_version":3}`, "raw_value deve ser no mínimo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockStockService)

			rec := do(t, newRouter(svc), http.MethodPost, "/v1/products/p1/stock/adjustments", tc.body, manager)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "VALIDATION_ERROR", body.Category)
			assert.Contains(t, body.Message, tc.message)
			svc.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAdjustStockHandler_RequiresClaims(t *testing.T) {
	svc := new(MockStockService)

	rec := do(t, newRouter(svc), http.MethodPost, "/v1/products/p1/stock/adjustments",
		`{"mode":"delta","input_unit":"unit","raw_value":1,"reason_code":"return"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListAdjustmentsHandler(t *testing.T) {
	svc := new(MockStockService)
	svc.On("ListAdjustments", mock.Anything, "p1", 20).
		Return([]domain.StockAdjustment{{ID: "a2"}, {ID: "a1"}}, nil)

	rec := do(t, newRouter(svc), http.MethodGet, "/v1/products/p1/stock/adjustments?limit=20", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.StockAdjustment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].ID)
}
