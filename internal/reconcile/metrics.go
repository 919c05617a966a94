package reconcile

import "github.com/shopspring/decimal"

// DefaultReorderThresholdDays é o limite padrão de dias de cobertura abaixo
// (ou igual) do qual uma reposição é sugerida.
const DefaultReorderThresholdDays = 7

// percentPlaces é a precisão das porcentagens devolvidas para exibição.
const percentPlaces = 2

var hundred = decimal.NewFromInt(100)

// Margin é o lucro unitário e a margem sobre o preço de venda.
type Margin struct {
	Profit        decimal.Decimal `json:"profit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// ComputeMargin calcula lucro e margem. Preço de venda zero resulta em 0%,
// nunca em divisão por zero. Margens negativas são resultado válido.
func ComputeMargin(sellingPrice, purchasePrice decimal.Decimal) Margin {
	profit := sellingPrice.Sub(purchasePrice)
	percent := decimal.Zero
	if sellingPrice.GreaterThan(decimal.Zero) {
		percent = profit.Div(sellingPrice).Mul(hundred).Round(percentPlaces)
	}
	return Margin{Profit: profit, MarginPercent: percent}
}

// ComputeCaseDiscount devolve o desconto percentual da caixa em relação à compra
// das unidades avulsas. Sem preço de caixa declarado o desconto é zero.
// Resultado negativo sinaliza caixa mais cara que as unidades.
func ComputeCaseDiscount(unitSellingPrice decimal.Decimal, unitsPerCase int, caseSellingPrice decimal.NullDecimal) decimal.Decimal {
	if !caseSellingPrice.Valid {
		return decimal.Zero
	}
	fullPrice := unitSellingPrice.Mul(decimal.NewFromInt(int64(unitsPerCase)))
	if !fullPrice.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return fullPrice.Sub(caseSellingPrice.Decimal).Div(fullPrice).Mul(hundred).Round(percentPlaces)
}

// EstimateDaysOfSupply estima quantos dias o estoque atual dura.
// Devolve nil (desconhecido) quando não há vendas médias positivas.
func EstimateDaysOfSupply(currentQuantity int, avgDailySales decimal.Decimal) *int {
	if !avgDailySales.GreaterThan(decimal.Zero) {
		return nil
	}
	days := int(decimal.NewFromInt(int64(currentQuantity)).Div(avgDailySales).Floor().IntPart())
	return &days
}

// Policy agrupa os parâmetros de negócio ajustáveis das métricas.
type Policy struct {
	ReorderThresholdDays int
}

// DefaultPolicy devolve a política com o limite padrão de reposição.
func DefaultPolicy() Policy {
	return Policy{ReorderThresholdDays: DefaultReorderThresholdDays}
}

// ReorderSuggested indica se os dias de cobertura conhecidos estão no limite ou abaixo.
func (p Policy) ReorderSuggested(daysOfSupply *int) bool {
	return daysOfSupply != nil && *daysOfSupply <= p.ReorderThresholdDays
}

// Metrics reúne os valores derivados exibidos para um produto.
type Metrics struct {
	UnitsPerCase      int             `json:"units_per_case"`
	UnitMargin        Margin          `json:"unit_margin"`
	CaseSellingPrice  decimal.Decimal `json:"case_selling_price"`
	CasePurchasePrice decimal.Decimal `json:"case_purchase_price"`
	CaseMargin        Margin          `json:"case_margin"`
	CaseDiscount      decimal.Decimal `json:"case_discount_percent"`
	DaysOfSupply      *int            `json:"days_of_supply"`
	ReorderSuggested  bool            `json:"reorder_suggested"`
}

// Summarize calcula todas as métricas do snapshot de uma vez.
// Só falha com InvalidPackagingConfig.
func Summarize(state ProductStockState, avgDailySales decimal.Decimal, policy Policy) (Metrics, error) {
	upc, err := state.UnitsPerCase()
	if err != nil {
		return Metrics{}, err
	}
	caseSelling, err := state.EffectiveCaseSellingPrice()
	if err != nil {
		return Metrics{}, err
	}
	casePurchase, err := state.EffectiveCasePurchasePrice()
	if err != nil {
		return Metrics{}, err
	}

	days := EstimateDaysOfSupply(state.Quantity, avgDailySales)
	return Metrics{
		UnitsPerCase:      upc,
		UnitMargin:        ComputeMargin(state.SellingPrice, state.PurchasePrice),
		CaseSellingPrice:  caseSelling,
		CasePurchasePrice: casePurchase,
		CaseMargin:        ComputeMargin(caseSelling, casePurchase),
		CaseDiscount:      ComputeCaseDiscount(state.SellingPrice, upc, state.CaseSellingPrice),
		DaysOfSupply:      days,
		ReorderSuggested:  policy.ReorderSuggested(days),
	}, nil
}
