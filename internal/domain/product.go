package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"posstock/internal/reconcile"
)

// Product representa um item do catálogo do PDV com sua embalagem, preços
// e o estoque atual em unidades base.
type Product struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// Embalagem: uma caixa contém CaseSize pacotes de PackSize unidades.
	CaseSize *int `json:"case_size,omitempty"`
	PackSize *int `json:"pack_size,omitempty"`

	SellingPrice      decimal.Decimal     `json:"selling_price"`
	PurchasePrice     decimal.Decimal     `json:"purchase_price"`
	CaseSellingPrice  decimal.NullDecimal `json:"case_selling_price"`
	CasePurchasePrice decimal.NullDecimal `json:"case_purchase_price"`

	Quantity  int       `json:"quantity"`
	Version   int       `json:"version"` // Controle de Concorrência Otimista (OCC)
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockState extrai o snapshot consumido pelo motor de reconciliação.
func (p Product) StockState() reconcile.ProductStockState {
	return reconcile.ProductStockState{
		Quantity:          p.Quantity,
		CaseSize:          p.CaseSize,
		PackSize:          p.PackSize,
		SellingPrice:      p.SellingPrice,
		PurchasePrice:     p.PurchasePrice,
		CaseSellingPrice:  p.CaseSellingPrice,
		CasePurchasePrice: p.CasePurchasePrice,
	}
}

// ProductFilter define os parâmetros de busca e paginação.
type ProductFilter struct {
	Page       int
	Limit      int
	Name       string
	SKU        string
	ActiveOnly bool
}

// Offset devolve o deslocamento SQL da página (páginas começam em 1).
func (f ProductFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// ProductInput é o payload de criação/atualização de produto.
// A quantidade inicial só vale na criação; depois o estoque muda por ajustes.
type ProductInput struct {
	SKU               string              `json:"sku" validate:"required,max=64"`
	Name              string              `json:"name" validate:"required,min=2,max=200"`
	Description       string              `json:"description" validate:"max=2000"`
	CaseSize          *int                `json:"case_size" validate:"omitempty,gt=0"`
	PackSize          *int                `json:"pack_size" validate:"omitempty,gt=0"`
	SellingPrice      decimal.Decimal     `json:"selling_price"`
	PurchasePrice     decimal.Decimal     `json:"purchase_price"`
	CaseSellingPrice  decimal.NullDecimal `json:"case_selling_price"`
	CasePurchasePrice decimal.NullDecimal `json:"case_purchase_price"`
	InitialQuantity   int                 `json:"initial_quantity" validate:"gte=0"`
	// ExpectedVersion só é usado na atualização (OCC).
	ExpectedVersion int `json:"expected_version" validate:"gte=0"`
}

// PricingView é a resposta de GET /v1/products/{id}/pricing.
type PricingView struct {
	ProductID         string           `json:"product_id"`
	UnitsPerCase      int              `json:"units_per_case"`
	UnitMargin        reconcile.Margin `json:"unit_margin"`
	CaseSellingPrice  decimal.Decimal  `json:"case_selling_price"`
	CasePurchasePrice decimal.Decimal  `json:"case_purchase_price"`
	CaseMargin        reconcile.Margin `json:"case_margin"`
	CaseDiscount      decimal.Decimal  `json:"case_discount_percent"`
	// PricingAnomaly sinaliza caixa mais cara que as unidades avulsas.
	PricingAnomaly bool `json:"pricing_anomaly"`
}

// SupplyView é a resposta de GET /v1/products/{id}/supply.
type SupplyView struct {
	ProductID            string          `json:"product_id"`
	Quantity             int             `json:"quantity"`
	AvgDailySales        decimal.Decimal `json:"avg_daily_sales"`
	WindowDays           int             `json:"window_days"`
	DaysOfSupply         *int            `json:"days_of_supply"`
	ReorderThresholdDays int             `json:"reorder_threshold_days"`
	ReorderSuggested     bool            `json:"reorder_suggested"`
}
