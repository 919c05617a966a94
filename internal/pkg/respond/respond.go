// Package respond padroniza as respostas JSON de sucesso e erro da API.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"

	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/logger"
	"posstock/internal/pkg/validate"
)

// JSON escreve data com o status informado. data nil gera corpo vazio.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz err para status HTTP e escreve um domain.ErrorResponse.
// Erros 5xx são logados como erro; o resto em debug.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
		// Detalhes internos não vazam para o cliente.
		message = "Ocorreu um erro interno. Tente novamente mais tarde."
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category),
			map[string]interface{}{"path": r.URL.Path, "method": r.Method})
	}

	JSON(w, log, status, domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// Bind decodifica o corpo JSON em v e aplica as regras de validação.
func Bind(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return validate.Struct(v)
}
