package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "posstock/internal/errors"
	"posstock/internal/reconcile"
)

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantCategory string
	}{
		{"validação", apperror.NewValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"não encontrado", apperror.NewNotFoundError("x"), http.StatusNotFound, "NOT_FOUND"},
		{"conflito", apperror.NewConflictError("x"), http.StatusConflict, "CONFLICT"},
		{"não autorizado", apperror.NewUnauthorizedError("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"proibido", apperror.NewForbiddenError("x"), http.StatusForbidden, "FORBIDDEN"},
		{"interno", apperror.NewInternalError("x", errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"rejeição", apperror.NewRejectionError(reconcile.NoOpAdjustment), http.StatusUnprocessableEntity, "NO_OP_ADJUSTMENT"},
		{"rejeição crua", reconcile.NegativeTarget, http.StatusUnprocessableEntity, "NEGATIVE_TARGET"},
		{"embrulhado", fmt.Errorf("camada: %w", apperror.NewNotFoundError("x")), http.StatusNotFound, "NOT_FOUND"},
		{"desconhecido", errors.New("qualquer"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, message := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCategory, category)
			assert.NotEmpty(t, message)
		})
	}
}

func TestRejectionError_UnwrapsToRejection(t *testing.T) {
	err := apperror.NewRejectionError(reconcile.MissingReason)
	assert.True(t, errors.Is(err, reconcile.MissingReason))
	assert.Contains(t, err.Error(), "motivo")
}

func TestNewDBError_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperror.NewDBError("Falha ao buscar produto", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "(DB)")
}
