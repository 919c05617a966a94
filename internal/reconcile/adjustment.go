package reconcile

import "errors"

// Mode define se o valor digitado é relativo (delta) ou absoluto (definir para).
type Mode string

const (
	ModeDelta    Mode = "delta"
	ModeAbsolute Mode = "absolute"
)

// Valid informa se o modo é conhecido.
func (m Mode) Valid() bool {
	return m == ModeDelta || m == ModeAbsolute
}

// ReasonCode é o motivo de negócio obrigatório de um ajuste.
type ReasonCode string

const (
	ReasonPurchaseOrder ReasonCode = "purchase_order"
	ReasonReturn        ReasonCode = "return"
	ReasonDamage        ReasonCode = "damage"
	ReasonLoss          ReasonCode = "loss"
	ReasonCount         ReasonCode = "count"
	ReasonCorrection    ReasonCode = "correction"
)

// ReasonCodes lista os motivos aceitos, na ordem exibida ao usuário.
var ReasonCodes = []ReasonCode{
	ReasonPurchaseOrder,
	ReasonReturn,
	ReasonDamage,
	ReasonLoss,
	ReasonCount,
	ReasonCorrection,
}

// Valid informa se o motivo está entre os códigos conhecidos.
func (r ReasonCode) Valid() bool {
	for _, code := range ReasonCodes {
		if r == code {
			return true
		}
	}
	return false
}

// AdjustmentRequest é a entrada do usuário para um único ajuste.
type AdjustmentRequest struct {
	Mode       Mode
	InputUnit  InputUnit
	RawValue   int
	ReasonCode ReasonCode
	Notes      string
}

// AdjustmentResult é o resultado validado e normalizado em unidades base.
// Quando Valid é false, RejectionReason diz o porquê e os números não devem ser enviados.
type AdjustmentResult struct {
	NormalizedDelta int       `json:"normalized_delta"`
	NewQuantity     int       `json:"new_quantity"`
	Valid           bool      `json:"valid"`
	RejectionReason Rejection `json:"rejection_reason,omitempty"`
}

// Err devolve a rejeição como error, ou nil para um resultado válido.
func (r AdjustmentResult) Err() error {
	if r.Valid {
		return nil
	}
	return r.RejectionReason
}

func rejected(reason Rejection) AdjustmentResult {
	return AdjustmentResult{Valid: false, RejectionReason: reason}
}

// ValidateAdjustment valida um valor já convertido para unidades base.
//
// Ordem das verificações: modo e faixas numéricas (InvalidInput), motivo
// (MissingReason) e por fim as regras de estoque. Sem motivo válido o ajuste
// é sempre MissingReason, qualquer que seja o valor digitado.
// Levar o estoque exatamente a zero é válido.
func ValidateAdjustment(currentQuantity int, mode Mode, normalizedRawValue int, reason ReasonCode) AdjustmentResult {
	if !mode.Valid() || currentQuantity < 0 || !inRange(currentQuantity) || !inRange(normalizedRawValue) {
		return rejected(InvalidInput)
	}
	if !reason.Valid() {
		return rejected(MissingReason)
	}

	current, raw := int64(currentQuantity), int64(normalizedRawValue)
	var delta int64
	switch mode {
	case ModeDelta:
		delta = raw
		if current+delta < 0 {
			return rejected(NegativeResultingStock)
		}
	case ModeAbsolute:
		if raw < 0 {
			return rejected(NegativeTarget)
		}
		delta = raw - current
	}

	if delta == 0 {
		return rejected(NoOpAdjustment)
	}
	next := current + delta
	if next > MaxQuantity {
		return rejected(InvalidInput)
	}

	return AdjustmentResult{
		NormalizedDelta: int(delta),
		NewQuantity:     int(next),
		Valid:           true,
	}
}

// Reconcile executa o fluxo completo: unidades por caixa, conversão para
// unidades base e validação contra o snapshot.
func Reconcile(state ProductStockState, req AdjustmentRequest) AdjustmentResult {
	if state.Quantity < 0 || !req.Mode.Valid() || !req.InputUnit.Valid() {
		return rejected(InvalidInput)
	}

	unitsPerCase, err := state.UnitsPerCase()
	if err != nil {
		return rejected(InvalidPackagingConfig)
	}

	base, err := ToBaseUnits(req.RawValue, req.InputUnit, unitsPerCase)
	if err != nil {
		reason := InvalidInput
		errors.As(err, &reason)
		return rejected(reason)
	}
	return ValidateAdjustment(state.Quantity, req.Mode, base, req.ReasonCode)
}
