package reconcile

import "github.com/shopspring/decimal"

// ProductStockState é o snapshot do produto que o chamador já possui.
// Preços são por unidade base; preços de caixa são opcionais.
type ProductStockState struct {
	Quantity          int
	CaseSize          *int
	PackSize          *int
	SellingPrice      decimal.Decimal
	PurchasePrice     decimal.Decimal
	CaseSellingPrice  decimal.NullDecimal
	CasePurchasePrice decimal.NullDecimal
}

// UnitsPerCase aplica ComputeUnitsPerCase à embalagem do snapshot.
func (s ProductStockState) UnitsPerCase() (int, error) {
	return ComputeUnitsPerCase(s.CaseSize, s.PackSize)
}

// EffectiveCaseSellingPrice devolve o preço de venda da caixa declarado ou,
// na ausência dele, preço unitário × unidades por caixa.
func (s ProductStockState) EffectiveCaseSellingPrice() (decimal.Decimal, error) {
	return effectiveCasePrice(s.CaseSellingPrice, s.SellingPrice, s)
}

// EffectiveCasePurchasePrice é o equivalente de custo de EffectiveCaseSellingPrice.
func (s ProductStockState) EffectiveCasePurchasePrice() (decimal.Decimal, error) {
	return effectiveCasePrice(s.CasePurchasePrice, s.PurchasePrice, s)
}

func effectiveCasePrice(declared decimal.NullDecimal, unitPrice decimal.Decimal, s ProductStockState) (decimal.Decimal, error) {
	if declared.Valid {
		return declared.Decimal, nil
	}
	upc, err := s.UnitsPerCase()
	if err != nil {
		return decimal.Zero, err
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(upc))), nil
}
