package domain

import (
	"time"

	"posstock/internal/reconcile"
)

// StockAdjustmentPayload é o corpo esperado em preview e envio de ajuste.
// ExpectedVersion é a versão do snapshot que o operador estava vendo; só é
// exigida no envio. RawValue fica em ±reconcile.MaxQuantity.
type StockAdjustmentPayload struct {
	Mode            string `json:"mode" validate:"required,oneof=delta absolute"`
	InputUnit       string `json:"input_unit" validate:"required,oneof=unit case"`
	RawValue        *int   `json:"raw_value" validate:"required,min=-2147483647,max=2147483647"`
	ReasonCode      string `json:"reason_code"`
	Notes           string `json:"notes" validate:"max=500"`
	ExpectedVersion *int   `json:"expected_version" validate:"omitnil,gt=0"`
}

// Request converte o payload para a entrada do motor.
// O motivo não é validado aqui: MissingReason é uma rejeição do motor.
func (p StockAdjustmentPayload) Request() reconcile.AdjustmentRequest {
	raw := 0
	if p.RawValue != nil {
		raw = *p.RawValue
	}
	return reconcile.AdjustmentRequest{
		Mode:       reconcile.Mode(p.Mode),
		InputUnit:  reconcile.InputUnit(p.InputUnit),
		RawValue:   raw,
		ReasonCode: reconcile.ReasonCode(p.ReasonCode),
		Notes:      p.Notes,
	}
}

// StockAdjustment é a linha do livro de ajustes (append-only).
// É o payload do endpoint de mutação: productId, reasonCode, quantityDelta, notes.
type StockAdjustment struct {
	ID             string               `json:"id"`
	ProductID      string               `json:"product_id"`
	ReasonCode     reconcile.ReasonCode `json:"reason_code"`
	QuantityDelta  int                  `json:"quantity_delta"`
	QuantityBefore int                  `json:"quantity_before"`
	QuantityAfter  int                  `json:"quantity_after"`
	Mode           reconcile.Mode       `json:"mode"`
	InputUnit      reconcile.InputUnit  `json:"input_unit"`
	RawValue       int                  `json:"raw_value"`
	Notes          string               `json:"notes"`
	ActorID        string               `json:"actor_id"`
	CreatedAt      time.Time            `json:"created_at"`
}

// AdjustmentOutcome é a resposta de um envio aceito.
type AdjustmentOutcome struct {
	Adjustment StockAdjustment `json:"adjustment"`
	Product    Product         `json:"product"`
}
