package product_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"posstock/internal/api/product"
	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/logger"
	"posstock/internal/reconcile"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductService) GetProducts(ctx context.Context, page, limit int, filters map[string]string) ([]domain.Product, error) {
	args := m.Called(ctx, page, limit, filters)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (domain.Product, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) GetPricing(ctx context.Context, id string) (domain.PricingView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.PricingView), args.Error(1)
}

func (m *MockProductService) GetSupplyInsight(ctx context.Context, id string) (domain.SupplyView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.SupplyView), args.Error(1)
}

func newRouter(svc *MockProductService) http.Handler {
	h := product.NewHandler(svc, logger.Nop())
	r := chi.NewRouter()
	r.Post("/v1/products", h.CreateProductHandler)
	r.Get("/v1/products", h.GetProductsHandler)
	r.Delete("/v1/products/{id}", h.DeleteProductHandler)
	r.Get("/v1/products/{id}/pricing", h.GetPricingHandler)
	r.Get("/v1/products/{id}/supply", h.GetSupplyHandler)
	return r
}

func TestCreateProductHandler(t *testing.T) {
	svc := new(MockProductService)
	svc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(in domain.ProductInput) bool {
		return in.SKU == "COLA-350" && *in.CaseSize == 4 && in.SellingPrice.Equal(decimal.RequireFromString("2.5"))
	})).Return(domain.Product{ID: "p1", SKU: "COLA-350", Quantity: 48, Version: 1}, nil)

	body := `{"sku":"COLA-350","name":"Refrigerante Cola","case_size":4,"pack_size":6,` +
		`"selling_price":"2.50","purchase_price":"1.50","initial_quantity":48}`
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/products", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "p1", got.ID)
	svc.AssertExpectations(t)
}

func TestCreateProductHandler_Validation(t *testing.T) {
	svc := new(MockProductService)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/products",
		strings.NewReader(`{"sku":"","name":"X","pack_size":0}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "sku é obrigatório")
	svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestGetProductsHandler_PassesQuery(t *testing.T) {
	svc := new(MockProductService)
	svc.On("GetProducts", mock.Anything, 2, 20, map[string]string{"name": "cola", "sku": "", "is_active": "true"}).
		Return([]domain.Product{{ID: "p1"}}, nil)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products?page=2&limit=20&name=cola&is_active=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDeleteProductHandler(t *testing.T) {
	svc := new(MockProductService)
	svc.On("DeleteProduct", mock.Anything, "p1").Return(nil)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/products/p1", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetPricingHandler_InvalidPackaging(t *testing.T) {
	svc := new(MockProductService)
	svc.On("GetPricing", mock.Anything, "p1").
		Return(domain.PricingView{}, apperror.NewRejectionError(reconcile.InvalidPackagingConfig))

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products/p1/pricing", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"INVALID_PACKAGING_CONFIG"`)
}

func TestGetSupplyHandler_UnknownVelocity(t *testing.T) {
	svc := new(MockProductService)
	svc.On("GetSupplyInsight", mock.Anything, "p1").
		Return(domain.SupplyView{ProductID: "p1", Quantity: 12, WindowDays: 30, ReorderThresholdDays: 7}, nil)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products/p1/supply", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"days_of_supply":null`)
	assert.Contains(t, rec.Body.String(), `"reorder_suggested":false`)
}
