package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/validate"
)

func intPtr(v int) *int { return &v }

func TestStruct_AdjustmentPayload(t *testing.T) {
	valid := domain.StockAdjustmentPayload{Mode: "delta", InputUnit: "case", RawValue: intPtr(0), ReasonCode: "count"}
	assert.NoError(t, validate.Struct(valid))

	err := validate.Struct(domain.StockAdjustmentPayload{Mode: "multiply", InputUnit: "unit"})
	require.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "mode deve ser um de [delta absolute]")
	assert.Contains(t, err.Error(), "raw_value é obrigatório")
}

func TestStruct_ReasonIsLeftToTheEngine(t *testing.T) {
	payload := domain.StockAdjustmentPayload{Mode: "absolute", InputUnit: "unit", RawValue: intPtr(3)}
	assert.NoError(t, validate.Struct(payload))
}

func TestStruct_ProductInput(t *testing.T) {
	err := validate.Struct(domain.ProductInput{SKU: "A1", Name: "X", CaseSize: intPtr(0), InitialQuantity: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name deve ser no mínimo 2")
	assert.Contains(t, err.Error(), "case_size deve ser maior que 0")
	assert.Contains(t, err.Error(), "initial_quantity deve ser no mínimo 0")
}

func TestStruct_Registration(t *testing.T) {
	err := validate.Struct(domain.UserRegistration{Email: "nope", Password: "123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email deve ser um email válido")
}
